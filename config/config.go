package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"finn-content-pipeline/types"
)

type Config struct {
	Ideas         IdeasConfig         `yaml:"ideas"`
	Script        ScriptConfig        `yaml:"script"`
	TTS           TTSConfig           `yaml:"tts"`
	Illustrations IllustrationsConfig `yaml:"illustrations"`
	Video         VideoConfig         `yaml:"video"`
	Postprod      PostprodConfig      `yaml:"postprod"`
	Sheets        SheetsConfig        `yaml:"sheets"`
	Paths         PathsConfig         `yaml:"paths"`

	// Voices is the full pool used for conversation characters.
	// PodcastVoices is the small allow-list podcast characters must
	// be drawn from.
	Voices        []types.Voice `yaml:"voices"`
	PodcastVoices []types.Voice `yaml:"podcast_voices"`
}

type IdeasConfig struct {
	ConversationModel    string `yaml:"conversation_model"`
	PodcastModel         string `yaml:"podcast_model"`
	NumConversationIdeas int    `yaml:"num_conversation_ideas"`
	NumPodcastIdeas      int    `yaml:"num_podcast_ideas"`
}

type ScriptConfig struct {
	OpenAIModel string  `yaml:"openai_model"`
	GeminiModel string  `yaml:"gemini_model"`
	Temperature float64 `yaml:"temperature"`
}

type TTSConfig struct {
	ModelID string `yaml:"model_id"`
}

type IllustrationsConfig struct {
	Model string `yaml:"model"`
}

type VideoConfig struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

type PostprodConfig struct {
	WhisperModel string  `yaml:"whisper_model"`
	MusicDir     string  `yaml:"music_dir"`
	MusicVolume  float64 `yaml:"music_volume"`
	FontSize     int     `yaml:"font_size"`
}

type SheetsConfig struct {
	ConversationSheet string `yaml:"conversation_sheet"`
	PodcastSheet      string `yaml:"podcast_sheet"`
}

type PathsConfig struct {
	IdeasFile        string `yaml:"ideas_file"`
	PodcastIdeasFile string `yaml:"podcast_ideas_file"`
	Scripts          string `yaml:"scripts"`
	PodcastScripts   string `yaml:"podcast_scripts"`
	Audio            string `yaml:"audio"`
	Illustrations    string `yaml:"illustrations"`
	Videos           string `yaml:"videos"`
	Final            string `yaml:"final"`
	Subtitles        string `yaml:"subtitles"`
	Temp             string `yaml:"temp"`
}

// Load reads config.yaml and returns a Config struct
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Paths.IdeasFile == "" {
		c.Paths.IdeasFile = "ideas.json"
	}
	if c.Paths.PodcastIdeasFile == "" {
		c.Paths.PodcastIdeasFile = "podcast_ideas.json"
	}
	if c.Paths.Scripts == "" {
		c.Paths.Scripts = "scripts"
	}
	if c.Paths.PodcastScripts == "" {
		c.Paths.PodcastScripts = "podcast_scripts"
	}
	if c.Paths.Audio == "" {
		c.Paths.Audio = "mp3"
	}
	if c.Paths.Illustrations == "" {
		c.Paths.Illustrations = "illustrations"
	}
	if c.Paths.Videos == "" {
		c.Paths.Videos = "output_videos"
	}
	if c.Paths.Final == "" {
		c.Paths.Final = "final_subtitled_videos"
	}
	if c.Paths.Subtitles == "" {
		c.Paths.Subtitles = "subtitles"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "temp_processing"
	}
	if c.Video.Width == 0 {
		c.Video.Width = 720
	}
	if c.Video.Height == 0 {
		c.Video.Height = 1280
	}
	if c.Video.AudioBitrate == "" {
		c.Video.AudioBitrate = "192k"
	}
	if c.Postprod.MusicVolume == 0 {
		c.Postprod.MusicVolume = 0.15
	}
}
