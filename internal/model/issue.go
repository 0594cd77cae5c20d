package model

import "fmt"

// IssueKind distinguishes constraint families so callers can branch
// without parsing messages.
type IssueKind string

const (
	KindRequired     IssueKind = "required"
	KindTooShort     IssueKind = "too_short"
	KindTooLong      IssueKind = "too_long"
	KindOutOfRange   IssueKind = "out_of_range"
	KindPattern      IssueKind = "pattern"
	KindInvalidEnum  IssueKind = "invalid_enum"
	KindInvalidEmail IssueKind = "invalid_email"
	KindNotPositive  IssueKind = "not_positive"
)

// Issue is one structural or rule-level validation failure. Path uses
// dotted notation with numeric indices for sequences, e.g.
// "items.0.price".
type Issue struct {
	Path    string    `json:"path"`
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s [%s]: %s", i.Path, i.Kind, i.Message)
}

// IssueList collects issues in the order they were produced. The
// structural and rule passes both emit this shape so their outputs
// merge uniformly.
type IssueList []Issue

// Add appends an issue.
func (l *IssueList) Add(path string, kind IssueKind, message string) {
	*l = append(*l, Issue{Path: path, Kind: kind, Message: message})
}

// HasPath reports whether any issue targets the given path.
func (l IssueList) HasPath(path string) bool {
	for _, i := range l {
		if i.Path == path {
			return true
		}
	}
	return false
}
