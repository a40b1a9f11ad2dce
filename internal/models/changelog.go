package models

import "fmt"

// ChangeLogKind identifies what a changelog entry announces.
type ChangeLogKind string

const (
	ChangeLogNew      ChangeLogKind = "NEW"
	ChangeLogChanged  ChangeLogKind = "CHANGED"
	ChangeLogFixed    ChangeLogKind = "FIXED"
	ChangeLogInternal ChangeLogKind = "INTERNAL"
	ChangeLogVersion  ChangeLogKind = "VERSION"
)

// IsValid checks if the kind is one of the known changelog kinds
func (k ChangeLogKind) IsValid() bool {
	switch k {
	case ChangeLogNew, ChangeLogChanged, ChangeLogFixed, ChangeLogInternal, ChangeLogVersion:
		return true
	default:
		return false
	}
}

// String returns the string representation of ChangeLogKind
func (k ChangeLogKind) String() string {
	return string(k)
}

// ParseChangeLogKind parses a string into a ChangeLogKind
func ParseChangeLogKind(s string) (ChangeLogKind, error) {
	k := ChangeLogKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid changelog kind: %s (must be NEW, CHANGED, FIXED, INTERNAL or VERSION)", s)
	}
	return k, nil
}

// IssueKind tells whether an issue reference points to an issue or a pull request.
type IssueKind string

const (
	IssueKindIssue IssueKind = "Issue"
	IssueKindPR    IssueKind = "PR"
)

// ParseIssueKind parses a string into an IssueKind
func ParseIssueKind(s string) (IssueKind, error) {
	switch IssueKind(s) {
	case IssueKindIssue, IssueKindPR:
		return IssueKind(s), nil
	default:
		return "", fmt.Errorf("invalid issue kind: %s (must be Issue or PR)", s)
	}
}

// ReleaseInfo marks the start of a release section in the changelog.
type ReleaseInfo struct {
	ReleaseNumber string
	ReleaseDate   string
}

// IssueRef is a change backed by an issue or a pull request.
type IssueRef struct {
	Message string
	ID      int
	Kind    IssueKind

	// Kudos credits the pull request author. Only used for PR references.
	Kudos string
}

// EntryVariant discriminates the payload carried by a ChangeLogEntry.
type EntryVariant int

const (
	VariantMessage EntryVariant = iota
	VariantVersion
	VariantIssue
)

// ChangeLogEntry is one line of the "what's new" changelog.
//
// Exactly one payload is meaningful, selected by Variant: Version for VERSION
// markers, Issue for issue/PR backed changes, Message otherwise. Use the
// constructors to build entries.
type ChangeLogEntry struct {
	Kind ChangeLogKind

	variant EntryVariant
	Version *ReleaseInfo
	Message string
	Issue   *IssueRef
}

// NewVersionEntry creates a VERSION marker.
func NewVersionEntry(releaseNumber, releaseDate string) ChangeLogEntry {
	return ChangeLogEntry{
		Kind:    ChangeLogVersion,
		variant: VariantVersion,
		Version: &ReleaseInfo{ReleaseNumber: releaseNumber, ReleaseDate: releaseDate},
	}
}

// NewMessageEntry creates an entry whose payload is a plain message.
func NewMessageEntry(kind ChangeLogKind, message string) ChangeLogEntry {
	return ChangeLogEntry{
		Kind:    kind,
		variant: VariantMessage,
		Message: message,
	}
}

// NewIssueEntry creates an entry backed by an issue or pull request.
func NewIssueEntry(kind ChangeLogKind, issue IssueRef) ChangeLogEntry {
	return ChangeLogEntry{
		Kind:    kind,
		variant: VariantIssue,
		Issue:   &issue,
	}
}

// Variant returns which payload the entry carries.
func (e ChangeLogEntry) Variant() EntryVariant {
	return e.variant
}
