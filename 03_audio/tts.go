// Package audio synthesizes one audio file per script via the
// ElevenLabs text-to-dialogue API. Single attempt per script:
// failures are logged and the batch moves on.
package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finn-content-pipeline/config"
	"finn-content-pipeline/stage"
	"finn-content-pipeline/types"
)

const dialogueEndpoint = "https://api.elevenlabs.io/v1/text-to-dialogue"

// Generator converts script dialogue lists into audio.
type Generator struct {
	cfg        *config.Config
	apiKey     string
	httpClient *http.Client
}

// New creates a Generator. ELEVENLABS_API_KEY is required.
func New(cfg *config.Config) (*Generator, error) {
	apiKey := os.Getenv("ELEVENLABS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY not set")
	}
	return &Generator{
		cfg:        cfg,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}, nil
}

// Run synthesizes audio for every script JSON in scriptsDir, writing
// mp3/<filePrefix><stem>.mp3. Scripts carrying an error marker or an
// empty dialogue_list are skipped.
func (g *Generator) Run(ctx context.Context, scriptsDir, filePrefix string) (stage.Report, error) {
	files, err := listJSON(scriptsDir)
	if err != nil {
		return stage.Report{}, err
	}
	if len(files) == 0 {
		log.Printf("[tts] ⚠️ No JSON files found in %s", scriptsDir)
	} else {
		log.Printf("[tts] 🎬 Found %d script(s) in %q. Starting generation...", len(files), scriptsDir)
	}

	rep := stage.Run(ctx, "tts", files, stemOf, func(ctx context.Context, path string) (string, error) {
		return g.generateOne(ctx, path, filePrefix)
	})
	rep.Summarize()
	return rep, nil
}

func (g *Generator) generateOne(ctx context.Context, scriptPath, filePrefix string) (string, error) {
	dialogue, err := loadDialogue(scriptPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(g.cfg.Paths.Audio, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", g.cfg.Paths.Audio, err)
	}
	outPath := filepath.Join(g.cfg.Paths.Audio, filePrefix+stemOf(scriptPath)+".mp3")

	audioBytes, err := g.convert(ctx, dialogue)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, audioBytes, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}

// convert posts the dialogue to the text-to-dialogue endpoint and
// returns the raw audio bytes.
func (g *Generator) convert(ctx context.Context, dialogue []types.DialogueLine) ([]byte, error) {
	payload := struct {
		Inputs  []types.DialogueLine `json:"inputs"`
		ModelID string               `json:"model_id,omitempty"`
	}{Inputs: dialogue, ModelID: g.cfg.TTS.ModelID}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", dialogueEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("elevenlabs status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	audioBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}
	return audioBytes, nil
}

// loadDialogue reads a script artifact and returns its dialogue
// list. Scripts whose generation failed upstream (error marker) or
// that carry no dialogue are rejected so no audio is synthesized from
// them.
func loadDialogue(path string) ([]types.DialogueLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s types.Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.Error != "" {
		return nil, fmt.Errorf("script carries error marker — skipping")
	}
	if len(s.DialogueList) == 0 {
		return nil, fmt.Errorf("missing or empty 'dialogue_list'")
	}
	return s.DialogueList, nil
}

func listJSON(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
