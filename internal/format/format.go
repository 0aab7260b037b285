// Package format holds the small text helpers used by the page templates.
package format

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/claes/teleflix/internal/model"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FileSize renders a byte count with 1024-based units, rounded to at most two
// decimals. The unit is picked before rounding, so 1048575 is "1024 KB".
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v, i := float64(bytes), 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	// FtoaWithDigits truncates, so round first.
	return humanize.FtoaWithDigits(math.Round(v*100)/100, 2) + " " + sizeUnits[i]
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// Rating renders a score with one decimal; nil renders as empty.
func Rating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

// FileLabel is the quality button caption: quality [• source] [• format].
func FileLabel(f model.FileInfo) string {
	parts := []string{f.Quality}
	if f.Source != "" {
		parts = append(parts, f.Source)
	}
	if f.Format != "" {
		parts = append(parts, f.Format)
	}
	return strings.Join(parts, " • ")
}

// Badge is the shorter caption used in episode rows: quality [• source].
func Badge(f model.FileInfo) string {
	if f.Source == "" {
		return f.Quality
	}
	return f.Quality + " • " + f.Source
}
