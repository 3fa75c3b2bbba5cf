// Package styledstring is the styled-string primitive used across this
// module: a plain string plus a set of tag extents, with parse/render to and
// from ANSI SGR escapes. See SPEC_FULL.md §3 for the data model this package
// implements.
package styledstring
