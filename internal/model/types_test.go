package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSeries = `{
  "_id": "abc",
  "title": "Breaking Bad",
  "slug": "breaking-bad",
  "media_type": "series",
  "rating": null,
  "genres": ["Drama"],
  "seasons": {
    "10": {"season_number": 10, "episodes": {}},
    "2": {"season_number": 2, "episodes": {"3": {"episode_number": 3, "files": []}, "1": {"episode_number": 1, "files": []}}},
    "1": {"season_number": 1, "episodes": {}}
  }
}`

func TestMedia_SeasonNumbersAscending(t *testing.T) {
	var m Media
	require.NoError(t, json.Unmarshal([]byte(sampleSeries), &m))

	assert.Equal(t, []int{1, 2, 10}, m.SeasonNumbers())
	assert.Equal(t, []int{1, 3}, m.Seasons[2].EpisodeNumbers())
	assert.Nil(t, m.Rating)
	assert.True(t, m.MediaType.IsEpisodic())
}

func TestMediaType_Valid(t *testing.T) {
	assert.True(t, Movie.Valid())
	assert.True(t, Anime.Valid())
	assert.False(t, MediaType("documentary").Valid())
	assert.False(t, Movie.IsEpisodic())
}
