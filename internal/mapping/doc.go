// Package mapping provides the YAML rule-file schema, loading, validation,
// the named filter registry, and compilation of rule files into mappers.
//
// # Schema Overview
//
// A rule file declares one or more named mappers:
//
//	version: "1"
//	root: contact
//	mappers:
//	  - name: contact
//	    on_conflict: overwrite       # overwrite | fail | skip
//	    rules:
//	      - from: /name/first
//	        to: /first_name
//	      - from: /email
//	        to: [/contact/email, /login]   # one rule per target
//	      - from: {path: /tags[0], filter: upcase}
//	        to: {path: /primary_tag, filter: downcase}
//	      - from: /addresses
//	        to: /addrs
//	        using: address             # delegate to another mapper
//	  - name: address
//	    rules:
//	      - from: /street
//	        to: /line1
//
// # Rule Expansion
//
// "from" and "to" accept a single path, a {path, filter} map, or a list of
// either. A rule with several paths on either side expands into one mapper
// rule per (from, to) pair, in declaration order.
//
// # Filters
//
// A filter named on a path runs when that path is written: a filter on "to"
// during normalize, a filter on "from" during denormalize. Names resolve
// through a FilterRegistry; DefaultFilters provides identity, string, int,
// float, bool, upcase, downcase and trim.
//
// # Delegation
//
// "using" names another mapper of the same file. Mappers are compiled in
// dependency order; delegation cycles are reported as errors.
package mapping
