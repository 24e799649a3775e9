package voices

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finn-content-pipeline/types"
)

func testPool() []types.Voice {
	return []types.Voice{
		{Name: "Aurora Voice", Gender: "female", Age: "young", VoiceID: "v-aurora"},
		{Name: "Jussi", Gender: "male", Age: "middle-aged", VoiceID: "v-jussi"},
		{Name: "Hope", Gender: "female", Age: "young", VoiceID: "v-hope"},
		{Name: "Grandpa Spuds Oxley", Gender: "male", Age: "old", VoiceID: "v-grandpa"},
	}
}

func poolIDs(pool []types.Voice) map[string]types.Voice {
	byID := make(map[string]types.Voice, len(pool))
	for _, v := range pool {
		byID[v.VoiceID] = v
	}
	return byID
}

func TestAssignEveryCharacterGetsAVoice(t *testing.T) {
	chars := []types.Character{
		{Name: "Liisa", Gender: "female", Age: "young"},
		{Name: "Mikko", Gender: "male", Age: "middle-aged"},
	}
	Assign(chars, testPool(), rand.New(rand.NewSource(1)))

	byID := poolIDs(testPool())
	for _, c := range chars {
		require.NotEmpty(t, c.VoiceID, "character %s has no voice", c.Name)
		_, ok := byID[c.VoiceID]
		assert.True(t, ok, "voice %q not from the pool", c.VoiceID)
	}
}

func TestAssignMatchesGenderAndAge(t *testing.T) {
	byID := poolIDs(testPool())
	// Enough matching voices exist, so the first tier must hold for
	// every seed.
	for seed := int64(0); seed < 20; seed++ {
		chars := []types.Character{
			{Name: "Liisa", Gender: "female", Age: "young"},
			{Name: "Mikko", Gender: "male", Age: "middle-aged"},
		}
		Assign(chars, testPool(), rand.New(rand.NewSource(seed)))

		assert.Equal(t, "female", byID[chars[0].VoiceID].Gender)
		assert.Equal(t, "young", byID[chars[0].VoiceID].Age)
		assert.Equal(t, "male", byID[chars[1].VoiceID].Gender)
		assert.Equal(t, "middle-aged", byID[chars[1].VoiceID].Age)
	}
}

func TestAssignPrefersDistinctVoices(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		chars := []types.Character{
			{Name: "Liisa", Gender: "female", Age: "young"},
			{Name: "Anna", Gender: "female", Age: "young"},
			{Name: "Mikko", Gender: "male", Age: "middle-aged"},
			{Name: "Pekka", Gender: "male", Age: "old"},
		}
		Assign(chars, testPool(), rand.New(rand.NewSource(seed)))

		seen := map[string]bool{}
		for _, c := range chars {
			assert.False(t, seen[c.VoiceID], "seed %d: voice %q assigned twice with pool headroom", seed, c.VoiceID)
			seen[c.VoiceID] = true
		}
	}
}

func TestAssignRelaxesToGenderOnly(t *testing.T) {
	byID := poolIDs(testPool())
	for seed := int64(0); seed < 20; seed++ {
		// No old female voice in the pool, so tier two (gender only)
		// must apply.
		chars := []types.Character{{Name: "Kerttu", Gender: "female", Age: "old"}}
		Assign(chars, testPool(), rand.New(rand.NewSource(seed)))
		assert.Equal(t, "female", byID[chars[0].VoiceID].Gender)
	}
}

func TestAssignAllowsDuplicatesWhenPoolExhausted(t *testing.T) {
	pool := []types.Voice{{Name: "Jussi", Gender: "male", Age: "middle-aged", VoiceID: "v-jussi"}}
	chars := []types.Character{
		{Name: "Mikko", Gender: "male"},
		{Name: "Pekka", Gender: "male"},
	}
	Assign(chars, pool, rand.New(rand.NewSource(1)))

	assert.Equal(t, "v-jussi", chars[0].VoiceID)
	assert.Equal(t, "v-jussi", chars[1].VoiceID)
}

func TestAssignEmptyPoolLeavesCharactersUntouched(t *testing.T) {
	chars := []types.Character{{Name: "Liisa", Gender: "female"}}
	Assign(chars, nil, rand.New(rand.NewSource(1)))
	assert.Empty(t, chars[0].VoiceID)
}

func TestAssignFromAllowlistMatchesByName(t *testing.T) {
	allowlist := []types.Voice{
		{Name: "Aurora Voice", VoiceID: "v-aurora"},
		{Name: "Jussi", VoiceID: "v-jussi"},
	}
	chars := []types.Character{
		{Name: "aurora voice"},
		{Name: "JUSSI"},
	}
	AssignFromAllowlist(chars, allowlist, rand.New(rand.NewSource(1)))

	assert.Equal(t, "v-aurora", chars[0].VoiceID)
	assert.Equal(t, "v-jussi", chars[1].VoiceID)
}

func TestAssignFromAllowlistUnknownNameStaysInsideAllowlist(t *testing.T) {
	allowlist := []types.Voice{
		{Name: "Aurora Voice", VoiceID: "v-aurora"},
		{Name: "Jussi", VoiceID: "v-jussi"},
	}
	allowed := map[string]bool{"v-aurora": true, "v-jussi": true}

	for seed := int64(0); seed < 20; seed++ {
		chars := []types.Character{{Name: "Keksitty Hahmo"}}
		AssignFromAllowlist(chars, allowlist, rand.New(rand.NewSource(seed)))
		assert.True(t, allowed[chars[0].VoiceID], "seed %d: voice %q outside the allow-list", seed, chars[0].VoiceID)
	}
}
