// internal/models/workfield.go
package models

import "strings"

// WorkFields is the fixed set of work-field categories a job application
// may declare.
var WorkFields = []string{
	"engineering",
	"information technology",
	"healthcare",
	"education",
	"finance",
	"business administration",
	"marketing",
	"legal",
	"agriculture",
	"hospitality",
	"construction",
	"creative arts",
}

var workFieldSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(WorkFields))
	for _, f := range WorkFields {
		set[f] = struct{}{}
	}
	return set
}()

// NormalizeWorkField lowercases and trims a declared work field so casing
// and whitespace never distinguish two submissions of the same field.
func NormalizeWorkField(field string) string {
	return strings.ToLower(strings.TrimSpace(field))
}

// IsValidWorkField reports whether field, after normalization, is a member
// of the enumerated work-field set.
func IsValidWorkField(field string) bool {
	_, ok := workFieldSet[NormalizeWorkField(field)]
	return ok
}
