package domain

import (
	"slices"
	"strings"
)

// NonField keys errors that belong to the whole form
const NonField = "__all__"

// SecurityFields are the fields whose errors mean tampering or a bot
var SecurityFields = []string{"honeypot", "timestamp", "security_hash"}

// Errors maps a field name to its messages in the order they were raised
type Errors map[string][]string

// Add appends msg to field
func (e Errors) Add(field, msg string) { e[field] = append(e[field], msg) }

// Has reports whether field has at least one message
func (e Errors) Has(field string) bool { return len(e[field]) > 0 }

// Empty reports whether there are no messages at all
func (e Errors) Empty() bool {
	for _, v := range e {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// Only returns the subset keyed by fields
func (e Errors) Only(fields ...string) Errors {
	out := Errors{}
	for _, f := range fields {
		if e.Has(f) {
			out[f] = slices.Clone(e[f])
		}
	}
	return out
}

// Fields returns the erroneous field names sorted
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k, v := range e {
		if len(v) > 0 {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// String renders "field: msg msg; field: msg" in field order
func (e Errors) String() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return strings.Join(parts, "; ")
}
