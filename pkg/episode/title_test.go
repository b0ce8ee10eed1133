package episode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podwiki/pkg/domain"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.Entry
		want  string
	}{
		{
			name:  "canonical",
			entry: domain.Entry{Title: "Episode 42: The Answer", Link: "https://pgenpod.com/episodes/42"},
			want:  "Episode 42: The Answer",
		},
		{
			name:  "promotional prefix",
			entry: domain.Entry{Title: "[LIVE] Episode 43: On Stage", Link: "https://pgenpod.com/episodes/43"},
			want:  "Episode 43: On Stage",
		},
		{
			name:  "correction marker",
			entry: domain.Entry{Title: "(CORRECTED) Episode 44: Redux", Link: "https://pgenpod.com/episodes/44"},
			want:  "Episode 44: Redux",
		},
		{
			name:  "bonus",
			entry: domain.Entry{Title: "NEW! Bonus 3: Outtakes", Link: "https://pgenpod.com/bonus/3"},
			want:  "Bonus 3: Outtakes",
		},
		{
			name:  "bonus link keeps episode word inside",
			entry: domain.Entry{Title: "Bonus 4: The Episode That Wasn't", Link: "https://pgenpod.com/bonus/4"},
			want:  "Bonus 4: The Episode That Wasn't",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeTitle(tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := SanitizeTitle(domain.Entry{Title: got, Link: tt.entry.Link})
			require.NoError(t, err)
			assert.Equal(t, got, again, "sanitizing twice must be a no-op")
		})
	}
}

func TestSanitizeTitle_Invalid(t *testing.T) {
	_, err := SanitizeTitle(domain.Entry{Title: "Trailer: Coming Soon", Link: "https://pgenpod.com/episodes/trailer"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTitle)

	var titleErr *InvalidTitleError
	require.True(t, errors.As(err, &titleErr))
	assert.Equal(t, "Trailer: Coming Soon", titleErr.Raw)
	assert.Equal(t, "Episode", titleErr.Marker)
}

func TestSanitizeTitle_BonusWithoutMarker(t *testing.T) {
	// Bonus links only accept the Bonus marker.
	_, err := SanitizeTitle(domain.Entry{Title: "Episode 9: Misfiled", Link: "https://pgenpod.com/bonus/9"})
	assert.ErrorIs(t, err, ErrInvalidTitle)
}
