package add

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alefragnani/vscode-whats-new/internal/content"
	"github.com/alefragnani/vscode-whats-new/internal/filesystem"
	"github.com/alefragnani/vscode-whats-new/internal/models"
)

func TestAnswers_Entry(t *testing.T) {
	tests := []struct {
		name    string
		answers Answers
		want    models.ChangeLogEntry
		wantErr string
	}{
		{
			name:    "plain message",
			answers: Answers{Kind: "new", Message: "  Adds walkthrough  "},
			want:    models.NewMessageEntry(models.ChangeLogNew, "Adds walkthrough"),
		},
		{
			name:    "issue",
			answers: Answers{Kind: "FIXED", Message: "Sticky selection", Reference: RefIssue, IssueID: "#7"},
			want:    models.NewIssueEntry(models.ChangeLogFixed, models.IssueRef{Message: "Sticky selection", ID: 7, Kind: models.IssueKindIssue}),
		},
		{
			name:    "pull request with kudos",
			answers: Answers{Kind: "CHANGED", Message: "Better labels", Reference: RefPR, IssueID: "42", Kudos: "@octocat"},
			want:    models.NewIssueEntry(models.ChangeLogChanged, models.IssueRef{Message: "Better labels", ID: 42, Kind: models.IssueKindPR, Kudos: "@octocat"}),
		},
		{
			name:    "issues drop kudos",
			answers: Answers{Kind: "NEW", Message: "x", Reference: RefIssue, IssueID: "1", Kudos: "@octocat"},
			want:    models.NewIssueEntry(models.ChangeLogNew, models.IssueRef{Message: "x", ID: 1, Kind: models.IssueKindIssue}),
		},
		{name: "version kind", answers: Answers{Kind: "VERSION", Message: "x"}, wantErr: "VERSION is not an entry kind"},
		{name: "unknown kind", answers: Answers{Kind: "ADDED", Message: "x"}, wantErr: "invalid changelog kind"},
		{name: "empty message", answers: Answers{Kind: "NEW", Message: "   "}, wantErr: "message cannot be empty"},
		{name: "bad issue number", answers: Answers{Kind: "NEW", Message: "x", Reference: RefPR, IssueID: "abc"}, wantErr: "invalid issue number"},
		{name: "zero issue number", answers: Answers{Kind: "NEW", Message: "x", Reference: RefIssue, IssueID: "0"}, wantErr: "invalid issue number"},
		{name: "kudos without pr", answers: Answers{Kind: "NEW", Message: "x", Kudos: "@me"}, wantErr: "only given on pull requests"},
		{name: "unknown reference", answers: Answers{Kind: "NEW", Message: "x", Reference: "MR", IssueID: "1"}, wantErr: "invalid reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.answers.Entry()
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	provider := content.NewFileProvider(mfs, "/ext/vscode-whats-new/content.md")

	result, err := Apply(provider, Answers{
		Kind:        "NEW",
		Message:     "Adds walkthrough",
		Reference:   RefPR,
		IssueID:     "42",
		Kudos:       "@octocat",
		Release:     "13.5.0",
		ReleaseDate: "March 2024",
	})
	require.NoError(t, err)
	require.Equal(t, "/ext/vscode-whats-new/content.md", result.Path)
	require.Equal(t, "13.5.0", result.Release.ReleaseNumber)

	reloaded, err := content.LoadFile(mfs, "/ext/vscode-whats-new/content.md")
	require.NoError(t, err)
	require.Equal(t, []models.ChangeLogEntry{
		models.NewVersionEntry("13.5.0", "March 2024"),
		result.Entry,
	}, reloaded.ProvideChangeLog())

	summary := RenderSuccess(result)
	require.Contains(t, summary, "Changelog Entry Added")
	require.Contains(t, summary, "Adds walkthrough (Thanks to @octocat - PR #42)")
	require.Contains(t, summary, "13.5.0")
}

func TestApply_InvalidAnswersWriteNothing(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	provider := content.NewFileProvider(mfs, "/ext/content.md")

	_, err := Apply(provider, Answers{Kind: "NEW"})
	require.Error(t, err)
	require.False(t, mfs.Exists("/ext/content.md"))
}
