package ideas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finn-content-pipeline/types"
)

func TestFormatExisting(t *testing.T) {
	assert.Equal(t, "None", formatExisting(nil))
	assert.Equal(t, "- Kahvilassa — Two friends meet", formatExisting([]string{"Kahvilassa — Two friends meet"}))
	assert.Equal(t, "- a\n- b", formatExisting([]string{"a", "b"}))
}

func TestFormatCharacters(t *testing.T) {
	chars := []types.Character{
		{Name: "Liisa", Role: "host"},
		{Name: "Mikko"},
	}
	assert.Equal(t, "Liisa (host); Mikko (N/A)", formatCharacters(chars))
	assert.Equal(t, "", formatCharacters(nil))
}

func TestCharactersJSON(t *testing.T) {
	chars := []types.Character{{Name: "Liisa", Gender: "female", VoiceID: "v-aurora"}}
	var back []types.Character
	require.NoError(t, json.Unmarshal([]byte(charactersJSON(chars)), &back))
	require.Len(t, back, 1)
	assert.Equal(t, "v-aurora", back[0].VoiceID)
}

func TestCellString(t *testing.T) {
	row := []interface{}{" Kahvilassa ", 42}
	assert.Equal(t, "Kahvilassa", cellString(row, 0))
	assert.Equal(t, "", cellString(row, 1), "non-string cells read as empty")
	assert.Equal(t, "", cellString(row, 5), "short rows read as empty")
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.json")
	file := types.IdeaFile{
		Metadata: map[string]string{"language": "Finnish"},
		Ideas:    []types.Idea{{Title: "Kahvilassa"}},
	}
	require.NoError(t, saveJSON(path, file))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back types.IdeaFile
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "Kahvilassa", back.Ideas[0].Title)
}
