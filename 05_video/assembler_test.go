package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairsStripsIllustrationPrefix(t *testing.T) {
	illus := map[string]string{
		"convo_fi_kahvilassa": "illustrations/convo_fi_kahvilassa.png",
		"convo_fi_orphan":     "illustrations/convo_fi_orphan.png",
	}
	audio := map[string]string{
		"kahvilassa": "mp3/kahvilassa.mp3",
		"lonely":     "mp3/lonely.mp3",
	}

	pairs := Pairs(illus, audio)

	require.Len(t, pairs, 1)
	assert.Equal(t, "kahvilassa", pairs[0].Slug)
	assert.Equal(t, "illustrations/convo_fi_kahvilassa.png", pairs[0].ImagePath)
	assert.Equal(t, "mp3/kahvilassa.mp3", pairs[0].AudioPath)
}

func TestPairsSortedBySlug(t *testing.T) {
	illus := map[string]string{
		"convo_fi_b": "b.png",
		"convo_fi_a": "a.png",
		"convo_fi_c": "c.png",
	}
	audio := map[string]string{"a": "a.mp3", "b": "b.mp3", "c": "c.mp3"}

	pairs := Pairs(illus, audio)

	require.Len(t, pairs, 3)
	assert.Equal(t, "a", pairs[0].Slug)
	assert.Equal(t, "b", pairs[1].Slug)
	assert.Equal(t, "c", pairs[2].Slug)
}

func TestPairsEmptyInputs(t *testing.T) {
	assert.Empty(t, Pairs(nil, nil))
	assert.Empty(t, Pairs(map[string]string{"convo_fi_a": "a.png"}, nil))
}
