// Package script turns ideas into dialogue scripts. Conversation
// scripts come from OpenAI, podcast scripts from Gemini, both in
// strict JSON mode. One script JSON is persisted per idea, keyed by
// the slug of the idea's title; a malformed model response is
// captured into the artifact as an error marker so downstream stages
// can skip it without the batch aborting.
package script

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"

	"finn-content-pipeline/config"
	"finn-content-pipeline/slug"
	"finn-content-pipeline/stage"
	"finn-content-pipeline/types"
)

const conversationSystemPrompt = "You are a creative Finnish dialogue writer who writes expressive, natural speech, and you strictly output only valid JSON."

// Writer generates conversation scripts via the OpenAI API.
type Writer struct {
	cfg    *config.Config
	client *openai.Client
}

// NewWriter creates a conversation script Writer. OPENAI_API_KEY is
// required.
func NewWriter(cfg *config.Config) (*Writer, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	return &Writer{cfg: cfg, client: openai.NewClient(apiKey)}, nil
}

// Run generates one script per idea in ideas.json and persists each
// under scripts/<slug>.json.
func (w *Writer) Run(ctx context.Context) (stage.Report, error) {
	file, err := loadIdeaFile(w.cfg.Paths.IdeasFile)
	if err != nil {
		return stage.Report{}, err
	}

	log.Printf("[script] 🎬 Generating %d conversation script(s)...", len(file.Ideas))
	rep := stage.Run(ctx, "script", file.Ideas, ideaKey, func(ctx context.Context, idea types.Idea) (string, error) {
		return w.generateOne(ctx, idea, file.Metadata)
	})
	rep.Summarize()
	return rep, nil
}

func (w *Writer) generateOne(ctx context.Context, idea types.Idea, metadata map[string]string) (string, error) {
	if len(idea.Characters) == 0 {
		return "", fmt.Errorf("idea %q has no characters", idea.Title)
	}

	prompt := buildConversationPrompt(idea, metadata)

	resp, err := w.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       w.cfg.Script.OpenAIModel,
		Temperature: float32(w.cfg.Script.Temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: conversationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		// The failure is persisted into the artifact so re-runs of
		// downstream stages see an explicit marker, not a missing file.
		path, saveErr := saveScript(w.cfg.Paths.Scripts, idea, metadata, nil, fmt.Sprintf("API error: %v", err))
		if saveErr != nil {
			return "", saveErr
		}
		return path, fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	content := cleanJSON(resp.Choices[0].Message.Content)
	dialogue, parseErr := parseDialogue(content)
	if parseErr != nil {
		path, saveErr := saveScript(w.cfg.Paths.Scripts, idea, metadata, nil, content)
		if saveErr != nil {
			return "", saveErr
		}
		return path, fmt.Errorf("parse dialogue JSON: %w", parseErr)
	}

	return saveScript(w.cfg.Paths.Scripts, idea, metadata, dialogue, "")
}

// buildConversationPrompt mirrors the prompt shape the dialogue model
// is tuned for: character map with exact voice ids, output format
// spec, then metadata and the idea itself.
func buildConversationPrompt(idea types.Idea, metadata map[string]string) string {
	var sb strings.Builder
	sb.WriteString("You are a Finnish dialogue writer. Your task is to generate a short (2–3 minutes) natural and realistic conversation based on the provided idea.\n\n")
	sb.WriteString("The output MUST be a single JSON object containing a key called 'dialogue_list'.\n")
	sb.WriteString("The 'dialogue_list' must be a JSON array of objects, where each object represents a dialogue line formatted exactly for the ElevenLabs text-to-dialogue API.\n\n")

	sb.WriteString("Characters:\n")
	for _, c := range idea.Characters {
		tone := c.DefaultTone
		if tone == "" {
			tone = "neutral"
		}
		sb.WriteString(fmt.Sprintf("- %s (Gender: %s, Default Tone: %s, Voice ID: %s)\n", c.Name, c.Gender, tone, c.VoiceID))
	}

	sb.WriteString("\nJSON Output Format Specification:\n")
	sb.WriteString("{\n  \"dialogue_list\": [\n    {\n      \"text\": \"[emotion] Dialogue line, including sound cues like [sigh] or [laugh].\",\n      \"voice_id\": \"The specific voice_id for this character from the list above.\"\n    }\n  ]\n}\n\n")

	sb.WriteString("Instructions:\n")
	sb.WriteString("- Use the exact 'voice_id' provided in the Characters list for each line.\n")
	sb.WriteString("- The 'text' field must start with an emotion/tone in brackets (e.g., [calm], [excited]).\n")
	sb.WriteString("- Keep the speech natural, expressive, and varied.\n")
	sb.WriteString("- Match each character's tone and personality.\n\n")

	sb.WriteString(fmt.Sprintf("Metadata:\nLanguage: %s\nTone: %s\nLength: %s\n\n",
		metaOr(metadata, "language", "Finnish"),
		metaOr(metadata, "tone", "neutral"),
		metaOr(metadata, "length", "1-2 minutes"),
	))

	sb.WriteString(fmt.Sprintf("Idea:\nTitle: %s\nDescription: %s\n\n", idea.Title, idea.Description))
	sb.WriteString("Generate the full conversation in the specified JSON format.")
	return sb.String()
}

func ideaKey(idea types.Idea) string { return slug.Make(idea.Title) }

func metaOr(m map[string]string, key, fallback string) string {
	if v := m[key]; v != "" {
		return v
	}
	return fallback
}

func loadIdeaFile(path string) (types.IdeaFile, error) {
	var file types.IdeaFile
	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

func parseDialogue(content string) ([]types.DialogueLine, error) {
	var payload struct {
		DialogueList []types.DialogueLine `json:"dialogue_list"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, err
	}
	return payload.DialogueList, nil
}

// saveScript persists the full script artifact under dir/<slug>.json,
// creating the directory on demand. errMarker non-empty means the
// generation failed; the marker is stored verbatim.
func saveScript(dir string, idea types.Idea, metadata map[string]string, dialogue []types.DialogueLine, errMarker string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	if dialogue == nil {
		dialogue = []types.DialogueLine{}
	}
	s := types.Script{
		Metadata:     metadata,
		Idea:         idea,
		DialogueList: dialogue,
		Error:        errMarker,
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal script: %w", err)
	}
	path := filepath.Join(dir, slug.Make(idea.Title)+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// cleanJSON strips markdown fences if the model wraps its response in
// ```json ... ```
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
