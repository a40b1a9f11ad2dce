package add

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alefragnani/vscode-whats-new/internal/models"
)

// Reference kinds offered by the flow
const (
	RefNone  = "none"
	RefIssue = string(models.IssueKindIssue)
	RefPR    = string(models.IssueKindPR)
)

// Answers holds what the user entered, interactively or through flags.
type Answers struct {
	Kind    string
	Message string

	// Reference is RefNone, RefIssue or RefPR
	Reference string
	IssueID   string
	Kudos     string

	// Release starts a new release section when set
	Release     string
	ReleaseDate string
}

// Entry validates the answers and builds the changelog entry
func (a Answers) Entry() (models.ChangeLogEntry, error) {
	kind, err := models.ParseChangeLogKind(strings.ToUpper(strings.TrimSpace(a.Kind)))
	if err != nil {
		return models.ChangeLogEntry{}, err
	}
	if kind == models.ChangeLogVersion {
		return models.ChangeLogEntry{}, fmt.Errorf("VERSION is not an entry kind, use --release to start a release")
	}

	message := strings.TrimSpace(a.Message)
	if message == "" {
		return models.ChangeLogEntry{}, fmt.Errorf("message cannot be empty")
	}

	reference := a.Reference
	if reference == "" {
		reference = RefNone
	}

	switch reference {
	case RefNone:
		if strings.TrimSpace(a.Kudos) != "" {
			return models.ChangeLogEntry{}, fmt.Errorf("kudos are only given on pull requests")
		}
		return models.NewMessageEntry(kind, message), nil
	case RefIssue, RefPR:
		id, err := ParseIssueID(a.IssueID)
		if err != nil {
			return models.ChangeLogEntry{}, err
		}
		issue := models.IssueRef{
			Message: message,
			ID:      id,
			Kind:    models.IssueKind(reference),
		}
		if reference == RefPR {
			issue.Kudos = strings.TrimSpace(a.Kudos)
		}
		return models.NewIssueEntry(kind, issue), nil
	default:
		return models.ChangeLogEntry{}, fmt.Errorf("invalid reference: %s (must be none, Issue or PR)", reference)
	}
}

// ParseIssueID parses an issue or pull request number, with or without a leading '#'
func ParseIssueID(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid issue number: %q", s)
	}
	return id, nil
}
