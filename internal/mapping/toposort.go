package mapping

import (
	"slices"
)

// topoSort orders n nodes so that every node comes after the nodes depsFn
// names for it. When several nodes are ready the smallest index goes first,
// which keeps declaration order wherever dependencies allow.
//
// Nodes that sit on or behind a cycle are returned in blocked, sorted; order
// then holds only the nodes that could be placed.
func topoSort(n int, depsFn func(i int) []int) (order, blocked []int) {
	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order = make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k, _ := slices.BinarySearch(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	for i := range n {
		if indeg[i] > 0 {
			blocked = append(blocked, i)
		}
	}

	return order, blocked
}
