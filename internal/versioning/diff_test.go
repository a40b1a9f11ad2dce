package versioning

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		a, b string
		want Diff
	}{
		{"1.0.0", "2.0.0", DiffMajor},
		{"1.2.0", "1.3.0", DiffMinor},
		{"1.2.3", "1.2.4", DiffPatch},
		{"1.2.3-rc.1", "1.2.3-rc.2", DiffPrerelease},
		{"1.2.3-rc.1", "1.2.3", DiffPrerelease},
		{"1.2.3", "1.2.3", DiffNone},
		{"1.2.3+a", "1.2.3+b", DiffNone},
		{"1.9.9", "2.0.0", DiffMajor},
		{"2.0.0-beta.1", "1.9.0", DiffMajor},
		{"v1.0.0", "1.1.0", DiffMinor},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			got, err := ClassifyStrings(tt.a, tt.b)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			// category does not depend on direction
			reversed, err := ClassifyStrings(tt.b, tt.a)
			require.NoError(t, err)
			require.Equal(t, got, reversed)
		})
	}
}

func TestParseVersion_Invalid(t *testing.T) {
	for _, input := range []string{"", "1", "1.2", "a.b.c", "1.2.3.4", "01.2.3"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseVersion(input)
			require.ErrorIs(t, err, ErrInvalidVersion)
		})
	}
}

func TestMajorMinor(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.2.3", "1.2"},
		{"v10.0.1", "10.0"},
		{"0.5.0-alpha", "0.5"},
		{"4.7.2+20240101", "4.7"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := MajorMinor(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := MajorMinor("latest")
	require.ErrorIs(t, err, ErrInvalidVersion)
}

func TestDiff_Notable(t *testing.T) {
	require.True(t, DiffMajor.Notable())
	require.True(t, DiffMinor.Notable())
	require.False(t, DiffPatch.Notable())
	require.False(t, DiffPrerelease.Notable())
	require.False(t, DiffNone.Notable())
}
