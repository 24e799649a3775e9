// Package illustrations generates one illustration per script via
// Gemini's image model. The model returns a square image; it is
// pasted onto the top of a white 9:16 canvas so the finished frame
// matches the vertical video format.
package illustrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"finn-content-pipeline/config"
	"finn-content-pipeline/stage"
	"finn-content-pipeline/types"
)

// FilePrefix is prepended to every illustration filename; the video
// assembler strips it when pairing illustrations with audio.
const FilePrefix = "convo_fi_"

const illustrationStyle = "Illustration style: Modern flat illustration with clean lines and a soft, muted color palette. " +
	"The characters have a friendly, approachable appearance with rounded features and simple, expressive faces. " +
	"Details are minimal but effective, focusing on essential elements like clothing textures, subtle shadows for depth, and distinct objects. " +
	"The overall aesthetic is warm, inviting, and slightly whimsical, reminiscent of casual lifestyle or explainer video graphics. " +
	"The style avoids harsh outlines or heavy shading, opting for a light and airy feel. " +
	"Backgrounds are simplified, using color blocks and minimal object representation to provide context without distraction."

// Generator produces illustrations for script artifacts.
type Generator struct {
	cfg    *config.Config
	client *genai.Client
}

// New creates a Generator. GEMINI_API_KEY is required.
func New(ctx context.Context, cfg *config.Config) (*Generator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &Generator{cfg: cfg, client: client}, nil
}

// Close releases the underlying API client.
func (g *Generator) Close() error { return g.client.Close() }

// Run generates one PNG per script JSON in the scripts directory.
func (g *Generator) Run(ctx context.Context) (stage.Report, error) {
	dir := g.cfg.Paths.Scripts
	entries, err := os.ReadDir(dir)
	if err != nil {
		return stage.Report{}, fmt.Errorf("read %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		log.Printf("[illustrations] ⚠️ No JSON files found in %s", dir)
	}

	rep := stage.Run(ctx, "illustrations", files, stemOf, g.generateOne)
	rep.Summarize()
	return rep, nil
}

func (g *Generator) generateOne(ctx context.Context, scriptPath string) (string, error) {
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", scriptPath, err)
	}
	var s types.Script
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("parse %s: %w", scriptPath, err)
	}
	if s.Error != "" {
		return "", fmt.Errorf("script carries error marker — skipping")
	}

	prompt := buildPrompt(s)
	log.Printf("[illustrations] 🎨 Generating illustration for %s", filepath.Base(scriptPath))

	model := g.client.GenerativeModel(g.cfg.Illustrations.Model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini image request: %w", err)
	}

	imgBytes, err := firstImage(resp)
	if err != nil {
		return "", err
	}

	framed, err := onPortraitCanvas(imgBytes)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(g.cfg.Paths.Illustrations, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", g.cfg.Paths.Illustrations, err)
	}
	outPath := filepath.Join(g.cfg.Paths.Illustrations, FilePrefix+stemOf(scriptPath)+".png")
	if err := os.WriteFile(outPath, framed, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}

// buildPrompt anchors the fixed style, then describes the scene from
// the idea, the characters, and a short dialogue sample.
func buildPrompt(s types.Script) string {
	var chars []string
	for _, c := range s.Idea.Characters {
		gender := c.Gender
		if gender == "" {
			gender = "unspecified gender"
		}
		age := c.Age
		if age == "" {
			age = "unspecified age"
		}
		chars = append(chars, fmt.Sprintf("%s (%s, %s)", c.Name, gender, age))
	}
	characterList := strings.Join(chars, "; ")
	if characterList == "" {
		characterList = "unspecified characters"
	}

	description := s.Idea.Description
	if description == "" {
		description = "No explicit description provided."
	}

	var sb strings.Builder
	sb.WriteString("Create a visually engaging digital illustration. ")
	sb.WriteString(illustrationStyle)
	sb.WriteString(" Do not include any text or captions in the image. Ensure the image is a single, clear illustration. ")
	sb.WriteString(fmt.Sprintf("The language of the script is %s, and the tone is %s. ",
		metaOr(s.Metadata, "language", "Unknown language"),
		metaOr(s.Metadata, "tone", "neutral"),
	))
	sb.WriteString(fmt.Sprintf("Scene description: %s ", description))
	sb.WriteString(fmt.Sprintf("The characters involved are: %s. ", characterList))
	sb.WriteString("Depict them naturally in a setting that fits the tone and context. ")
	sb.WriteString(fmt.Sprintf("The mood and expressions should reflect the feel of this sample dialogue: '%s'.", dialogueSample(s.DialogueList, 40)))
	return sb.String()
}

// dialogueSample joins dialogue text and truncates to maxWords words.
func dialogueSample(lines []types.DialogueLine, maxWords int) string {
	var all []string
	for _, l := range lines {
		all = append(all, l.Text)
	}
	words := strings.Fields(strings.Join(all, " "))
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + "..."
}

// firstImage returns the bytes of the first inline image part.
func firstImage(resp *genai.GenerateContentResponse) ([]byte, error) {
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	if resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("candidate content is empty — likely a safety block")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok {
			return blob.Data, nil
		}
	}
	return nil, fmt.Errorf("no image data in model response")
}

// onPortraitCanvas decodes the (square) generated image and pastes it
// at the top of a white width×(width*16/9) canvas, returning PNG
// bytes.
func onPortraitCanvas(imgBytes []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("decode generated image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	targetHeight := width * 16 / 9

	canvas := image.NewRGBA(image.Rect(0, 0, width, targetHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, width, bounds.Dy()), img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode canvas: %w", err)
	}
	return buf.Bytes(), nil
}

func metaOr(m map[string]string, key, fallback string) string {
	if v := m[key]; v != "" {
		return v
	}
	return fallback
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
