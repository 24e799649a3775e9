package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Kahvilassa", "kahvilassa"},
		{"Café  at Noon!!", "caf-at-noon"},
		{"Sää on kaunis tänään", "sää-on-kaunis-tänään"},
		{"Törkeä juttu", "törkeä-juttu"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"ALL CAPS TITLE", "all-caps-title"},
		{"123 numbers stay", "123-numbers-stay"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Make(c.title), "title %q", c.title)
	}
}

func TestMakeKeepsFinnishVowels(t *testing.T) {
	// ä and ö are part of the allowed alphabet, not separators.
	assert.Equal(t, "yö", Make("yö"))
	assert.Equal(t, "äiti-ja-pöytä", Make("Äiti ja pöytä"))
}

func TestMakeIdempotent(t *testing.T) {
	for _, title := range []string{"Kahvilassa tavataan!", "Sää-ennuste 2024", "yö & päivä"} {
		once := Make(title)
		assert.Equal(t, once, Make(once), "Make must be idempotent for %q", title)
	}
}

func TestMakeNoEdgeHyphens(t *testing.T) {
	got := Make("--Hello, World!--")
	assert.Equal(t, "hello-world", got)
}
