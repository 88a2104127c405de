/*
Package naming centralizes everything about node names and dagpaths: validity
rules, conformance, path joining, and the compilation of caller-supplied
address patterns into matchers.

A dagpath is a pipe-separated sequence of node names, e.g. `|group1|locator1`.
A leading pipe anchors the path at the root of the scene. Patterns may use
`*` as a wildcard over word characters and may themselves be hierarchical.

This package enforces the naming schema in one place so stores never have to
agree on it independently.
*/
package naming
