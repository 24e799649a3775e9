package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
ideas:
  conversation_model: "gemini-2.5-pro"
  num_conversation_ideas: 10
script:
  openai_model: "gpt-4o-mini"
  temperature: 0.8
postprod:
  whisper_model: "base"
  music_volume: 0.2
voices:
  - name: "Jussi"
    gender: "male"
    age: "middle-aged"
    voice_id: "abc123"
podcast_voices:
  - name: "Jussi"
    gender: "male"
    age: "middle-aged"
    voice_id: "abc123"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", cfg.Ideas.ConversationModel)
	assert.Equal(t, 10, cfg.Ideas.NumConversationIdeas)
	assert.Equal(t, "gpt-4o-mini", cfg.Script.OpenAIModel)
	assert.Equal(t, 0.8, cfg.Script.Temperature)
	assert.Equal(t, 0.2, cfg.Postprod.MusicVolume)

	require.Len(t, cfg.Voices, 1)
	assert.Equal(t, "abc123", cfg.Voices[0].VoiceID)
	require.Len(t, cfg.PodcastVoices, 1)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.Equal(t, "ideas.json", cfg.Paths.IdeasFile)
	assert.Equal(t, "scripts", cfg.Paths.Scripts)
	assert.Equal(t, "podcast_scripts", cfg.Paths.PodcastScripts)
	assert.Equal(t, "mp3", cfg.Paths.Audio)
	assert.Equal(t, "output_videos", cfg.Paths.Videos)
	assert.Equal(t, "final_subtitled_videos", cfg.Paths.Final)
	assert.Equal(t, "temp_processing", cfg.Paths.Temp)
	assert.Equal(t, 720, cfg.Video.Width)
	assert.Equal(t, 1280, cfg.Video.Height)
	assert.Equal(t, "192k", cfg.Video.AudioBitrate)
	assert.Equal(t, 0.15, cfg.Postprod.MusicVolume)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "voices: [not: {valid"))
	assert.Error(t, err)
}
