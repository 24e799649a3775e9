package script

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finn-content-pipeline/types"
)

func TestCleanJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  {\"a\": 1}  \n", `{"a": 1}`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, cleanJSON(c.in))
	}
}

func TestParseDialogue(t *testing.T) {
	dialogue, err := parseDialogue(`{"dialogue_list": [
		{"text": "[iloinen] Hei!", "voice_id": "v-aurora"},
		{"text": "[rauhallinen] Moikka.", "voice_id": "v-jussi"}
	]}`)
	require.NoError(t, err)

	require.Len(t, dialogue, 2)
	assert.Equal(t, "[iloinen] Hei!", dialogue[0].Text)
	assert.Equal(t, "v-jussi", dialogue[1].VoiceID)
}

func TestParseDialogueMalformed(t *testing.T) {
	_, err := parseDialogue("the model apologizes instead of emitting JSON")
	assert.Error(t, err)
}

func TestSaveScriptKeyedBySlug(t *testing.T) {
	dir := t.TempDir()
	idea := types.Idea{Title: "Kahvilassa tavataan!", Description: "Two friends meet."}
	dialogue := []types.DialogueLine{{Text: "[iloinen] Hei!", VoiceID: "v-aurora"}}

	path, err := saveScript(dir, idea, map[string]string{"language": "Finnish"}, dialogue, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kahvilassa-tavataan.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var s types.Script
	require.NoError(t, json.Unmarshal(data, &s))

	assert.Equal(t, "Kahvilassa tavataan!", s.Idea.Title)
	assert.Equal(t, "Finnish", s.Metadata["language"])
	require.Len(t, s.DialogueList, 1)
	assert.Empty(t, s.Error)
}

func TestSaveScriptWithErrorMarker(t *testing.T) {
	dir := t.TempDir()
	idea := types.Idea{Title: "Epäonnistunut"}

	path, err := saveScript(dir, idea, nil, nil, "API error: model unavailable")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var s types.Script
	require.NoError(t, json.Unmarshal(data, &s))

	assert.Equal(t, "API error: model unavailable", s.Error)
	assert.NotNil(t, s.DialogueList)
	assert.Empty(t, s.DialogueList)
}

func TestLoadIdeaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"metadata": {"language": "Finnish", "tone": "casual"},
		"ideas": [{"title": "Kahvilassa", "description": "desc", "characters": [
			{"name": "Liisa", "gender": "female", "voice_id": "v-aurora"}
		]}]
	}`), 0644))

	file, err := loadIdeaFile(path)
	require.NoError(t, err)

	assert.Equal(t, "casual", file.Metadata["tone"])
	require.Len(t, file.Ideas, 1)
	require.Len(t, file.Ideas[0].Characters, 1)
	assert.Equal(t, "v-aurora", file.Ideas[0].Characters[0].VoiceID)
}

func TestLoadIdeaFileMissing(t *testing.T) {
	_, err := loadIdeaFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestIdeaKey(t *testing.T) {
	assert.Equal(t, "sää-on-kaunis", ideaKey(types.Idea{Title: "Sää on kaunis!"}))
}
