package illustrations

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finn-content-pipeline/types"
)

func TestDialogueSample(t *testing.T) {
	lines := []types.DialogueLine{
		{Text: "one two three"},
		{Text: "four five"},
	}
	assert.Equal(t, "one two three four five", dialogueSample(lines, 10))
	assert.Equal(t, "one two three...", dialogueSample(lines, 3))
	assert.Equal(t, "", dialogueSample(nil, 10))
}

func TestBuildPromptIncludesSceneDetails(t *testing.T) {
	s := types.Script{
		Metadata: map[string]string{"language": "Finnish", "tone": "casual"},
		Idea: types.Idea{
			Description: "Two friends meet at a café.",
			Characters: []types.Character{
				{Name: "Liisa", Gender: "female", Age: "young"},
				{Name: "Mikko", Gender: "male", Age: "middle-aged"},
			},
		},
		DialogueList: []types.DialogueLine{{Text: "Hei, mitä kuuluu?"}},
	}

	prompt := buildPrompt(s)

	assert.Contains(t, prompt, "Two friends meet at a café.")
	assert.Contains(t, prompt, "Liisa (female, young)")
	assert.Contains(t, prompt, "Mikko (male, middle-aged)")
	assert.Contains(t, prompt, "Finnish")
	assert.Contains(t, prompt, "Hei, mitä kuuluu?")
	assert.Contains(t, prompt, "Do not include any text")
}

func TestBuildPromptFallbacks(t *testing.T) {
	prompt := buildPrompt(types.Script{})

	assert.Contains(t, prompt, "unspecified characters")
	assert.Contains(t, prompt, "No explicit description provided.")
	assert.Contains(t, prompt, "Unknown language")
}

func TestOnPortraitCanvas(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 90, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 90; x++ {
			src.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := onPortraitCanvas(buf.Bytes())
	require.NoError(t, err)

	framed, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// 9:16 portrait canvas, source pasted at the top, white below.
	assert.Equal(t, 90, framed.Bounds().Dx())
	assert.Equal(t, 160, framed.Bounds().Dy())

	r, _, _, _ := framed.At(45, 45).RGBA()
	assert.Equal(t, uint32(200), r>>8, "top half keeps the source image")

	r, g, b, _ := framed.At(45, 150).RGBA()
	assert.Equal(t, uint32(0xffff), r, "bottom fill is white")
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestOnPortraitCanvasRejectsGarbage(t *testing.T) {
	_, err := onPortraitCanvas([]byte("not an image"))
	assert.Error(t, err)
}
