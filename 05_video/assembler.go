// Package video assembles one narrated still-image video per matched
// (illustration, audio) pair via ffmpeg.
package video

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	illustrations "finn-content-pipeline/04_illustrations"
	"finn-content-pipeline/config"
	"finn-content-pipeline/match"
	"finn-content-pipeline/stage"
)

// Pair is one matched illustration+audio unit keyed by slug.
type Pair struct {
	Slug      string
	ImagePath string
	AudioPath string
}

// Assembler joins the illustration and audio directories and encodes
// videos.
type Assembler struct {
	cfg *config.Config
}

// New creates an Assembler.
func New(cfg *config.Config) *Assembler {
	return &Assembler{cfg: cfg}
}

// Run pairs assets by slug and encodes output_videos/<slug>.mp4 for
// every pair. Unpaired assets are silently skipped.
func (a *Assembler) Run(ctx context.Context) (stage.Report, error) {
	illus, err := match.Stems(a.cfg.Paths.Illustrations)
	if err != nil {
		return stage.Report{}, fmt.Errorf("list illustrations: %w", err)
	}
	audio, err := match.Stems(a.cfg.Paths.Audio)
	if err != nil {
		return stage.Report{}, fmt.Errorf("list audio: %w", err)
	}

	pairs := Pairs(illus, audio)
	if len(pairs) == 0 {
		log.Println("[video] No matching illustration and audio files found.")
	} else {
		log.Printf("[video] Found %d matching pair(s).", len(pairs))
	}

	if err := os.MkdirAll(a.cfg.Paths.Videos, 0755); err != nil {
		return stage.Report{}, fmt.Errorf("create %s: %w", a.cfg.Paths.Videos, err)
	}

	rep := stage.Run(ctx, "video", pairs, func(p Pair) string { return p.Slug }, a.encodeOne)
	rep.Summarize()
	return rep, nil
}

// Pairs intersects the two stem sets by slug. Illustration stems
// carry the illustrations.FilePrefix which is stripped before the
// exact-stem join against the audio stems.
func Pairs(illus, audio map[string]string) []Pair {
	bySlug := make(map[string]string, len(illus))
	for stem, path := range illus {
		bySlug[strings.TrimPrefix(stem, illustrations.FilePrefix)] = path
	}

	var pairs []Pair
	for _, slug := range match.Common(bySlug, audio) {
		pairs = append(pairs, Pair{Slug: slug, ImagePath: bySlug[slug], AudioPath: audio[slug]})
	}
	return pairs
}

// encodeOne loops the still image for the duration of the audio.
func (a *Assembler) encodeOne(ctx context.Context, p Pair) (string, error) {
	outPath := filepath.Join(a.cfg.Paths.Videos, p.Slug+".mp4")

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-loop", "1",
		"-i", p.ImagePath,
		"-i", p.AudioPath,
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-c:a", "aac",
		"-b:a", a.cfg.Video.AudioBitrate,
		"-pix_fmt", "yuv420p",
		"-vf", fmt.Sprintf("scale=%d:%d,setsar=1", a.cfg.Video.Width, a.cfg.Video.Height),
		"-shortest",
		outPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg encode: %w", err)
	}
	return outPath, nil
}
