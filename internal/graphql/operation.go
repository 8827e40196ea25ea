package graphql

import "regexp"

// mutationPattern matches documents whose first non-blank text is a named
// mutation with a variable list. It is a heuristic, not a parser: anonymous
// mutations and documents that start with another operation do not match.
var mutationPattern = regexp.MustCompile(`\A\s*mutation\s+[_A-Za-z][_0-9A-Za-z]*\s*\(`)

var operationPattern = regexp.MustCompile(`\A\s*(query|mutation|subscription)\s+([_A-Za-z][_0-9A-Za-z]*)`)

// IsMutation reports whether query looks like a named mutation
func IsMutation(query string) bool {
	return mutationPattern.MatchString(query)
}

// OperationName extracts the name of the first operation in query, or
// "unknown" when the document does not start with a named operation
func OperationName(query string) string {
	m := operationPattern.FindStringSubmatch(query)
	if m == nil {
		return "unknown"
	}
	return m[2]
}
