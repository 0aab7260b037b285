package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/claes/teleflix/internal/model"
)

func TestFileSize(t *testing.T) {
	cases := map[int64]string{
		0:          "0 Bytes",
		512:        "512 Bytes",
		1024:       "1 KB",
		1536:       "1.5 KB",
		1048576:    "1 MB",
		1234567:    "1.18 MB",
		1048575:    "1024 KB",
		1535:       "1.5 KB",
		1029:       "1 KB",
		1030:       "1.01 KB",
		1288490189: "1.2 GB",
		1 << 41:    "2 TB",
		1 << 51:    "2048 TB",
	}
	for in, want := range cases {
		assert.Equal(t, want, FileSize(in), "FileSize(%d)", in)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Movie", Capitalize("movie"))
	assert.Equal(t, "Anime", Capitalize("Anime"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Éclair", Capitalize("éclair"))
}

func TestRating(t *testing.T) {
	r := 8.26
	assert.Equal(t, "8.3", Rating(&r))
	assert.Equal(t, "", Rating(nil))
}

func TestFileLabel(t *testing.T) {
	f := model.FileInfo{Quality: "1080p", Source: "BluRay", Format: "x264"}
	assert.Equal(t, "1080p • BluRay • x264", FileLabel(f))
	assert.Equal(t, "1080p • BluRay", Badge(f))

	f = model.FileInfo{Quality: "720p", Format: "HEVC"}
	assert.Equal(t, "720p • HEVC", FileLabel(f))
	assert.Equal(t, "720p", Badge(f))
}
