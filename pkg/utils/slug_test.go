package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dihora04/djbook.in-sub000/pkg/utils"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"DJ Rohan (Mumbai)", "dj-rohan-mumbai"},
		{"  Aria & The Beats  ", "aria-the-beats"},
		{"dj--already--slugged", "dj-already-slugged"},
		{"हिंदी DJ", "dj"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, utils.Slugify(c.in), "input %q", c.in)
	}
}

func TestUniqueSlug(t *testing.T) {
	existing := map[string]bool{"dj-rohan": true, "dj-rohan-2": true}
	taken := func(s string) bool { return existing[s] }

	assert.Equal(t, "dj-rohan-3", utils.UniqueSlug("DJ Rohan", taken))
	assert.Equal(t, "dj-aria", utils.UniqueSlug("DJ Aria", taken))
	assert.Equal(t, "dj", utils.UniqueSlug("???", func(string) bool { return false }))
}
