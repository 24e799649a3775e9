// Package postprod runs the per-video post-production chain:
// subtitle burn-in into a temp file, sidecar subtitle archival,
// background-music mixing into the final directory, and guaranteed
// temp cleanup. Each video is fully processed before the next begins;
// one video's failure never stops the batch.
package postprod

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"finn-content-pipeline/config"
	"finn-content-pipeline/stage"
)

// Subtitler burns subtitles into a copy of src written at dst. As a
// side effect it leaves a sidecar subtitle file next to src.
type Subtitler interface {
	Burn(ctx context.Context, src, dst string) error
}

// Mixer mixes background audio into src, writing the result at dst.
type Mixer interface {
	Mix(ctx context.Context, src, dst string) error
}

// Pipeline drives post-production over every video in the source
// directory.
type Pipeline struct {
	cfg       *config.Config
	subtitler Subtitler
	mixer     Mixer
}

// New creates a Pipeline with the given collaborators.
func New(cfg *config.Config, subtitler Subtitler, mixer Mixer) *Pipeline {
	return &Pipeline{cfg: cfg, subtitler: subtitler, mixer: mixer}
}

var videoExtensions = map[string]bool{".mp4": true, ".mov": true, ".avi": true, ".mkv": true}

// item is one video's processing unit; all paths derive from the
// source file name. It exists only for the duration of one item's
// processing.
type item struct {
	source   string // output_videos/<name>
	tempOut  string // temp_processing/subtitled_<name>
	finalOut string // final_subtitled_videos/<name>
	sidecar  string // <name minus ext>.ass next to the source
}

// Run processes every video and removes the temp-processing
// directory afterwards.
func (p *Pipeline) Run(ctx context.Context) (stage.Report, error) {
	for _, dir := range []string{p.cfg.Paths.Videos, p.cfg.Paths.Final, p.cfg.Paths.Subtitles, p.cfg.Paths.Temp} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return stage.Report{}, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	items, err := p.collectItems()
	if err != nil {
		return stage.Report{}, err
	}
	if len(items) == 0 {
		log.Printf("[postprod] No video files found in %q.", p.cfg.Paths.Videos)
	} else {
		log.Printf("[postprod] Found %d video(s) to process.", len(items))
	}

	rep := stage.Run(ctx, "postprod", items, func(it item) string { return filepath.Base(it.source) }, p.processOne)

	if err := os.RemoveAll(p.cfg.Paths.Temp); err != nil {
		log.Printf("[postprod] ⚠️ could not remove temp directory: %v", err)
	} else {
		log.Printf("[postprod] -> Removed temporary directory: %s", p.cfg.Paths.Temp)
	}

	rep.Summarize()
	return rep, nil
}

func (p *Pipeline) collectItems() ([]item, error) {
	entries, err := os.ReadDir(p.cfg.Paths.Videos)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.cfg.Paths.Videos, err)
	}
	var items []item
	for _, e := range entries {
		if e.IsDir() || !videoExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		src := filepath.Join(p.cfg.Paths.Videos, e.Name())
		items = append(items, item{
			source:   src,
			tempOut:  filepath.Join(p.cfg.Paths.Temp, "subtitled_"+e.Name()),
			finalOut: filepath.Join(p.cfg.Paths.Final, e.Name()),
			sidecar:  strings.TrimSuffix(src, filepath.Ext(src)) + ".ass",
		})
	}
	return items, nil
}

// processOne walks one video through subtitling and mixing.
//
// The temp subtitled file is removed on every exit path once the
// subtitling postcondition has passed — including a mixing failure.
// An abort before that point owes no cleanup: no temp file was
// produced to mix.
func (p *Pipeline) processOne(ctx context.Context, it item) (string, error) {
	log.Printf("[postprod] Processing %s", filepath.Base(it.source))

	if err := p.subtitler.Burn(ctx, it.source, it.tempOut); err != nil {
		return "", fmt.Errorf("subtitle burn: %w", err)
	}
	if _, err := os.Stat(it.tempOut); err != nil {
		return "", fmt.Errorf("subtitled video not found after burn — aborting item")
	}

	defer func() {
		if err := os.Remove(it.tempOut); err != nil && !os.IsNotExist(err) {
			log.Printf("[postprod] ⚠️ could not remove temp file %s: %v", it.tempOut, err)
		}
	}()

	// The sidecar is archived as soon as subtitling completed,
	// whatever happens during mixing.
	p.moveSidecar(it)

	if err := p.mixer.Mix(ctx, it.tempOut, it.finalOut); err != nil {
		return "", fmt.Errorf("audio mix: %w", err)
	}
	if _, err := os.Stat(it.finalOut); err != nil {
		return "", fmt.Errorf("final output was not created: %s", filepath.Base(it.finalOut))
	}
	return it.finalOut, nil
}

func (p *Pipeline) moveSidecar(it item) {
	if _, err := os.Stat(it.sidecar); err != nil {
		return
	}
	dst := filepath.Join(p.cfg.Paths.Subtitles, filepath.Base(it.sidecar))
	if err := os.Rename(it.sidecar, dst); err != nil {
		log.Printf("[postprod] ⚠️ could not move subtitle file %s: %v", it.sidecar, err)
		return
	}
	log.Printf("[postprod] -> Moved subtitle file to: %s", dst)
}
