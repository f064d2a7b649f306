// Package main provides the CLI entrypoint for hashmapper.
//
// hashmapper converts nested documents between two shapes:
//   - normalize turns canonical documents into wire documents
//   - denormalize turns wire documents back into canonical ones
//   - check validates a rule file without converting anything
package main

import (
	"hash-mapper/internal/cmd"
)

func main() {
	cmd.Execute()
}
