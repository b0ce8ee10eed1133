package episode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podwiki/pkg/domain"
)

func testFeed() *domain.Feed {
	return domain.NewFeed([]domain.Entry{
		{
			Title:     "Episode 3: Gamma",
			Link:      "https://pgenpod.com/episodes/3",
			ImageURL:  "https://images.example.com/content/ep3.png?format=1500w",
			Published: time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC),
			Duration:  "01:02:03",
			Tags:      []string{"Alice", "Bob", "carol"},
			Summary:   `<p>Gamma summary. <a href="x">link</a></p>`,
		},
		{
			Title:     "[REUPLOAD] Bonus 2: Beta Extras",
			Link:      "https://pgenpod.com/bonus/2/",
			ImageURL:  "https://images.example.com/content/bonus2.jpg",
			Published: time.Date(2024, time.February, 20, 12, 0, 0, 0, time.UTC),
			Tags:      []string{"Alice"},
			Summary:   `<p>Beta summary.</p>`,
		},
		{
			Title:     "Episode 1: Alpha",
			Link:      "https://pgenpod.com/episodes/1",
			ImageURL:  "https://images.example.com/content/ep1.png",
			Published: time.Date(2024, time.January, 9, 12, 0, 0, 0, time.UTC),
			Tags:      []string{"Alice", "Dave"},
			Summary:   `<p>Alpha summary.</p>`,
		},
	})
}

func TestExtract_Newest(t *testing.T) {
	ep, err := Extract(testFeed(), 0)
	require.NoError(t, err)

	assert.Equal(t, "Episode 3: Gamma", ep.Title)
	assert.Equal(t, "3", ep.Number)
	assert.Equal(t, "ep3.png", ep.ImageFilename)
	assert.Equal(t, "https://images.example.com/content/ep3.png?format=1500w", ep.ImageURL)
	assert.Equal(t, []string{"Alice", "Bob", "carol"}, ep.Featuring)
	assert.Equal(t, "Mar 05, 2024", ep.Date)
	assert.Equal(t, "01:02:03", ep.Duration)
	assert.Equal(t, "[[Bonus 2: Beta Extras]]", ep.PreviousLink())
	assert.Equal(t, "", ep.NextLink())
	assert.Equal(t, "Gamma summary.", ep.Summary)
	assert.Equal(t, "https://pgenpod.com/episodes/3", ep.Link)
}

func TestExtract_BonusInMiddle(t *testing.T) {
	ep, err := Extract(testFeed(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Bonus 2: Beta Extras", ep.Title)
	assert.Equal(t, "Bonus 2", ep.Number)
	assert.Equal(t, "", ep.Duration, "missing duration is not an error")
	assert.Equal(t, "[[Episode 1: Alpha]]", ep.PreviousLink())
	assert.Equal(t, "[[Episode 3: Gamma]]", ep.NextLink())
}

func TestExtract_Oldest(t *testing.T) {
	ep, err := Extract(testFeed(), 2)
	require.NoError(t, err)

	assert.Equal(t, "", ep.PreviousLink())
	assert.Equal(t, "[[Bonus 2: Beta Extras]]", ep.NextLink())
}

func TestExtract_Errors(t *testing.T) {
	_, err := Extract(testFeed(), 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	noTags := domain.NewFeed([]domain.Entry{{Title: "Episode 1: Alone", Link: "https://pgenpod.com/episodes/1"}})
	_, err = Extract(noTags, 0)
	assert.ErrorIs(t, err, ErrNoContributors)

	badNeighbour := domain.NewFeed([]domain.Entry{
		{Title: "Episode 2: Fine", Link: "https://pgenpod.com/episodes/2", Tags: []string{"Alice"}},
		{Title: "Trailer", Link: "https://pgenpod.com/episodes/trailer", Tags: []string{"Alice"}},
	})
	_, err = Extract(badNeighbour, 0)
	assert.ErrorIs(t, err, ErrInvalidTitle)
}

func TestImageFilename(t *testing.T) {
	assert.Equal(t, "cover.jpg", ImageFilename("https://cdn.example.com/a/b/cover.jpg"))
	assert.Equal(t, "cover.jpg", ImageFilename("https://cdn.example.com/a/cover.jpg?format=300w"))
	assert.Equal(t, "", ImageFilename(""))
}
