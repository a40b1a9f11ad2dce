package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseChangeLogKind(t *testing.T) {
	for _, s := range []string{"NEW", "CHANGED", "FIXED", "INTERNAL", "VERSION"} {
		kind, err := ParseChangeLogKind(s)
		require.NoError(t, err)
		require.Equal(t, s, kind.String())
	}

	_, err := ParseChangeLogKind("new")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid changelog kind")
}

func TestParseIssueKind(t *testing.T) {
	kind, err := ParseIssueKind("PR")
	require.NoError(t, err)
	require.Equal(t, IssueKindPR, kind)

	kind, err = ParseIssueKind("Issue")
	require.NoError(t, err)
	require.Equal(t, IssueKindIssue, kind)

	_, err = ParseIssueKind("MR")
	require.Error(t, err)
}

func TestChangeLogEntry_Variant(t *testing.T) {
	version := NewVersionEntry("13.0.0", "March 2024")
	require.Equal(t, VariantVersion, version.Variant())
	require.Equal(t, ChangeLogVersion, version.Kind)
	require.Equal(t, "13.0.0", version.Version.ReleaseNumber)
	require.Equal(t, "March 2024", version.Version.ReleaseDate)

	message := NewMessageEntry(ChangeLogFixed, "Sticky selection")
	require.Equal(t, VariantMessage, message.Variant())
	require.Equal(t, "Sticky selection", message.Message)
	require.Nil(t, message.Issue)

	issue := NewIssueEntry(ChangeLogNew, IssueRef{Message: "Walkthrough", ID: 42, Kind: IssueKindPR, Kudos: "@octocat"})
	require.Equal(t, VariantIssue, issue.Variant())
	require.Equal(t, 42, issue.Issue.ID)
	require.Nil(t, issue.Version)
}

func TestExtension_ID(t *testing.T) {
	ext := &Extension{Publisher: "alefragnani", Name: "bookmarks"}
	require.Equal(t, "alefragnani.bookmarks", ext.ID())
}
