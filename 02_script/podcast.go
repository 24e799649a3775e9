package script

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"finn-content-pipeline/config"
	"finn-content-pipeline/stage"
	"finn-content-pipeline/types"
)

const podcastSystemPrompt = "You are an expert Finnish language podcast scriptwriter who writes instructional, engaging dialogue and strictly outputs only valid JSON."

// PodcastWriter generates instructional podcast scripts via Gemini.
type PodcastWriter struct {
	cfg    *config.Config
	client *genai.Client
}

// NewPodcastWriter creates a podcast script writer. GEMINI_API_KEY is
// required.
func NewPodcastWriter(ctx context.Context, cfg *config.Config) (*PodcastWriter, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &PodcastWriter{cfg: cfg, client: client}, nil
}

// Close releases the underlying API client.
func (w *PodcastWriter) Close() error { return w.client.Close() }

// Run generates one podcast script per idea in podcast_ideas.json and
// persists each under podcast_scripts/<slug>.json.
func (w *PodcastWriter) Run(ctx context.Context) (stage.Report, error) {
	var file types.PodcastIdeaFile
	data, err := os.ReadFile(w.cfg.Paths.PodcastIdeasFile)
	if err != nil {
		return stage.Report{}, fmt.Errorf("read %s: %w", w.cfg.Paths.PodcastIdeasFile, err)
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return stage.Report{}, fmt.Errorf("parse %s: %w", w.cfg.Paths.PodcastIdeasFile, err)
	}

	log.Printf("[script] 🎬 Generating %d podcast script(s)...", len(file.Ideas))
	rep := stage.Run(ctx, "script", file.Ideas, ideaKey, func(ctx context.Context, idea types.Idea) (string, error) {
		return w.generateOne(ctx, idea, file.Metadata)
	})
	rep.Summarize()
	return rep, nil
}

func (w *PodcastWriter) generateOne(ctx context.Context, idea types.Idea, metadata map[string]string) (string, error) {
	if len(idea.Characters) == 0 {
		return "", fmt.Errorf("podcast idea %q has no characters", idea.Title)
	}

	model := w.client.GenerativeModel(w.cfg.Script.GeminiModel)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(podcastSystemPrompt)}}
	model.GenerationConfig = genai.GenerationConfig{ResponseMIMEType: "application/json"}
	model.SetTemperature(float32(w.cfg.Script.Temperature))

	resp, err := model.GenerateContent(ctx, genai.Text(buildPodcastPrompt(idea, metadata)))
	if err != nil {
		path, saveErr := saveScript(w.cfg.Paths.PodcastScripts, idea, metadata, nil, fmt.Sprintf("API error: %v", err))
		if saveErr != nil {
			return "", saveErr
		}
		return path, fmt.Errorf("gemini request: %w", err)
	}

	content := cleanJSON(firstText(resp))
	dialogue, parseErr := parseDialogue(content)
	if parseErr != nil {
		path, saveErr := saveScript(w.cfg.Paths.PodcastScripts, idea, metadata, nil, content)
		if saveErr != nil {
			return "", saveErr
		}
		return path, fmt.Errorf("parse podcast dialogue JSON: %w", parseErr)
	}

	return saveScript(w.cfg.Paths.PodcastScripts, idea, metadata, dialogue, "")
}

func buildPodcastPrompt(idea types.Idea, metadata map[string]string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert Finnish language podcast scriptwriter. Your task is to generate an engaging, instructional podcast script based on the provided concept and characters.\n\n")
	sb.WriteString("The output MUST be a single JSON object containing a key called 'dialogue_list'.\n")
	sb.WriteString("The 'dialogue_list' must be a JSON array of objects, where each object represents a dialogue line formatted exactly for the ElevenLabs text-to-dialogue API.\n\n")
	sb.WriteString("The script should be a language lesson and must include clear explanations and examples based on the concept. ")
	sb.WriteString("The main language of the script must be English, with Finnish phrases and vocabulary introduced, explained, and repeated for the lesson.\n\n")

	sb.WriteString("Characters:\n")
	for _, c := range idea.Characters {
		sb.WriteString(fmt.Sprintf("- %s (Role: %s, Tone: %s, Voice ID: %s)\n", c.Name, c.Role, c.DefaultTone, c.VoiceID))
	}

	sb.WriteString("\nInstructions:\n")
	sb.WriteString("- Use the exact 'voice_id' provided in the Characters list for each line.\n")
	sb.WriteString("- The 'text' field must start with an emotion/tone in brackets (e.g., [calm], [excited]).\n")
	sb.WriteString("- The script must clearly deliver the lesson outlined in the concept.\n")
	sb.WriteString("- STRICTLY: The vast majority (85%+) of the dialogue should be in English. Introduce and explain Finnish words/phrases clearly.\n")
	sb.WriteString("- Ensure the total duration aligns with the metadata length.\n\n")

	sb.WriteString(fmt.Sprintf("Metadata:\nTarget Audience: %s\nDuration: %s\nFormat: %s\n\n",
		metaOr(metadata, "target_audience", "Absolute Beginner"),
		metaOr(metadata, "duration", "3-5 minutes"),
		metaOr(metadata, "format", "Solo or Host/Guest"),
	))

	sb.WriteString(fmt.Sprintf("Podcast Idea:\nTitle: %s\nConcept: %s\n\n", idea.Title, idea.Concept))
	sb.WriteString("Generate the full podcast script in the specified JSON format.")
	return sb.String()
}

func firstText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text)
		}
	}
	return ""
}
