package model

import "strings"

// SplitScope splits a space-separated scope string into its values.
// An empty scope yields an empty slice.
func SplitScope(scope string) []string {
	return strings.Fields(scope)
}

// ScopeEqual compares two scope strings exactly. Matching is by string
// equality, not subset or superset: "openid profile" never satisfies a
// request for "openid".
func ScopeEqual(a, b string) bool {
	return a == b
}
