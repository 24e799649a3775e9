package ideas

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"finn-content-pipeline/config"
	"finn-content-pipeline/types"
	"finn-content-pipeline/voices"
)

const conversationSystemPrompt = `You are a creative idea generator for short Finnish conversations.
You must output STRICTLY in JSON format.

Rules:
- Each idea can have 2 or more characters.
- CRITICAL: Each character MUST have a distinct role (e.g., Speaker 1, Speaker 2, Customer, Shopkeeper, Friend, Parent) so the script stage can identify who is speaking.
- One conversation must not reuse the same character.
- The gender and age of each character must be specified so a matching voice can be assigned.
- Dialogues must be suitable for beginners learning Finnish.
- Each idea must be creative, fun, and immediately useful for a beginner.
- Use realistic Finnish names and situations (e.g., cafés, trams, offices, home).
- Only fill in the string values.`

const podcastSystemPromptTemplate = `You are a highly creative script idea generator for short (3-5 minute) educational podcasts aimed at absolute beginners learning Finnish.
The ideas must focus on either a single, highly useful beginner Finnish tip (a grammar shortcut, a cultural concept, a pronunciation trick) OR a small set of immediately useful phrases for a specific situation.
The podcast can be a 'Solo Host' (1 character) or 'Host and Guest' (2 characters).
You must output STRICTLY in JSON format.

Rules:
- Each idea must be creative, fun, and immediately useful for a beginner.
- Use realistic Finnish names and describe the character roles (Host, Guest, or Solo Presenter).
- The gender and age of each character must be specified.
- CRITICAL: The character names in the 'characters' array MUST be chosen ONLY from this approved list of names: %s.
- The 'title' should be catchy and podcast-friendly.
- Only fill in the string values.`

// Generator produces idea files via Gemini and assigns voices.
type Generator struct {
	cfg    *config.Config
	client *genai.Client
	sheets *SheetSync // nil when Sheets sync is not configured
	rng    *rand.Rand
}

// New creates a Generator. GEMINI_API_KEY is required; a missing key
// terminates the run at startup.
func New(ctx context.Context, cfg *config.Config, sheets *SheetSync) (*Generator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &Generator{
		cfg:    cfg,
		client: client,
		sheets: sheets,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Close releases the underlying API client.
func (g *Generator) Close() error { return g.client.Close() }

var characterSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":         {Type: genai.TypeString},
		"role":         {Type: genai.TypeString, Description: "e.g., Speaker 1, Customer, Host, Solo Presenter"},
		"gender":       {Type: genai.TypeString},
		"age":          {Type: genai.TypeString},
		"default_tone": {Type: genai.TypeString},
	},
	Required: []string{"name", "role", "gender", "age", "default_tone"},
}

var conversationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"metadata": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"language": {Type: genai.TypeString},
				"tone":     {Type: genai.TypeString},
				"length":   {Type: genai.TypeString},
			},
			Required: []string{"language", "tone", "length"},
		},
		"ideas": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"characters":  {Type: genai.TypeArray, Items: characterSchema},
				},
				Required: []string{"title", "description", "characters"},
			},
		},
	},
	Required: []string{"metadata", "ideas"},
}

var podcastSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"metadata": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"target_audience": {Type: genai.TypeString, Description: "e.g., Absolute Beginner"},
				"duration":        {Type: genai.TypeString, Description: "e.g., 3-5 minutes"},
				"format":          {Type: genai.TypeString, Description: "e.g., Solo or Host/Guest"},
			},
			Required: []string{"target_audience", "duration", "format"},
		},
		"podcast_ideas": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":      {Type: genai.TypeString, Description: "Catchy episode title."},
					"concept":    {Type: genai.TypeString, Description: "Brief summary of the tip or phrases taught."},
					"characters": {Type: genai.TypeArray, Items: characterSchema},
				},
				Required: []string{"title", "concept", "characters"},
			},
		},
	},
	Required: []string{"metadata", "podcast_ideas"},
}

// GenerateConversations produces conversation ideas, assigns voices
// from the full pool and writes ideas.json.
func (g *Generator) GenerateConversations(ctx context.Context) error {
	if len(g.cfg.Voices) == 0 {
		return fmt.Errorf("voice pool is empty — check config.yaml")
	}
	n := g.cfg.Ideas.NumConversationIdeas
	log.Printf("[ideas] 🪄 Generating %d conversation ideas...", n)

	existing := g.existingTitles(ctx, g.cfg.Sheets.ConversationSheet)

	prompt := fmt.Sprintf(
		"Generate %d unique ideas for short Finnish conversations, following the specified JSON structure exactly.\n\n"+
			"IMPORTANT: Do NOT create conversations with these titles or descriptions (already exist):\n%s\n\n"+
			"Create ONLY NEW and DIFFERENT conversation ideas — avoid repeating or closely resembling existing titles or descriptions.",
		n, formatExisting(existing),
	)

	raw, err := g.generateJSON(ctx, g.cfg.Ideas.ConversationModel, conversationSystemPrompt, conversationSchema, prompt)
	if err != nil {
		return err
	}

	var file types.IdeaFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse ideas JSON: %w", err)
	}

	for i := range file.Ideas {
		voices.Assign(file.Ideas[i].Characters, g.cfg.Voices, g.rng)
	}

	if err := saveJSON(g.cfg.Paths.IdeasFile, file); err != nil {
		return err
	}
	log.Printf("[ideas] ✅ %d ideas saved to %s", len(file.Ideas), g.cfg.Paths.IdeasFile)

	if g.sheets != nil {
		g.sheets.AppendConversations(ctx, g.cfg.Sheets.ConversationSheet, file)
	} else {
		log.Println("[ideas] ⚠️ Google Sheets sync skipped (not configured)")
	}
	return nil
}

// GeneratePodcasts produces podcast episode ideas, binds characters
// to the allow-list and writes podcast_ideas.json.
func (g *Generator) GeneratePodcasts(ctx context.Context) error {
	if len(g.cfg.PodcastVoices) == 0 {
		return fmt.Errorf("podcast voice allow-list is empty — check config.yaml")
	}
	n := g.cfg.Ideas.NumPodcastIdeas
	log.Printf("[ideas] 🪄 Generating %d podcast lesson ideas...", n)

	existing := g.existingTitles(ctx, g.cfg.Sheets.PodcastSheet)

	var names []string
	for _, v := range g.cfg.PodcastVoices {
		names = append(names, v.Name)
	}
	system := fmt.Sprintf(podcastSystemPromptTemplate, strings.Join(names, ", "))

	prompt := fmt.Sprintf(
		"Generate %d unique, creative, and highly useful podcast ideas for Finnish beginners, following the specified JSON structure exactly. "+
			"Remember to use only the allowed character names.\n\n"+
			"IMPORTANT: Do NOT create podcasts with these titles or descriptions (already exist):\n%s\n\n"+
			"Create ONLY NEW and DIFFERENT podcast ideas — avoid repeating or closely resembling existing titles or descriptions.",
		n, formatExisting(existing),
	)

	raw, err := g.generateJSON(ctx, g.cfg.Ideas.PodcastModel, system, podcastSchema, prompt)
	if err != nil {
		return err
	}

	var file types.PodcastIdeaFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse podcast ideas JSON: %w", err)
	}

	for i := range file.Ideas {
		voices.AssignFromAllowlist(file.Ideas[i].Characters, g.cfg.PodcastVoices, g.rng)
	}

	if err := saveJSON(g.cfg.Paths.PodcastIdeasFile, file); err != nil {
		return err
	}
	log.Printf("[ideas] ✅ %d podcast ideas saved to %s", len(file.Ideas), g.cfg.Paths.PodcastIdeasFile)

	if g.sheets != nil {
		g.sheets.AppendPodcasts(ctx, g.cfg.Sheets.PodcastSheet, file)
	} else {
		log.Println("[ideas] ⚠️ Google Sheets sync skipped (not configured)")
	}
	return nil
}

// generateJSON runs one schema-constrained Gemini call and returns
// the raw JSON text of the first candidate.
func (g *Generator) generateJSON(ctx context.Context, modelName, system string, schema *genai.Schema, prompt string) ([]byte, error) {
	model := g.client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return []byte(text), nil
		}
	}
	return nil, fmt.Errorf("gemini response has no text part")
}

// existingTitles fetches already-used title+description rows so the
// prompt can steer the model away from duplicates. Best-effort.
func (g *Generator) existingTitles(ctx context.Context, sheet string) []string {
	if g.sheets == nil {
		return nil
	}
	titles, err := g.sheets.ExistingTitles(ctx, sheet)
	if err != nil {
		log.Printf("[ideas] ⚠️ could not fetch existing titles: %v", err)
		return nil
	}
	log.Printf("[ideas] 📊 Found %d existing title+description rows in %q", len(titles), sheet)
	return titles
}

func formatExisting(titles []string) string {
	if len(titles) == 0 {
		return "None"
	}
	var sb strings.Builder
	for _, t := range titles {
		sb.WriteString("- ")
		sb.WriteString(t)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
