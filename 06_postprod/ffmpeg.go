package postprod

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"finn-content-pipeline/config"
)

// FFmpegSubtitler transcribes the video with whisper (translate
// task), leaving the .ass sidecar next to the source, then burns the
// subtitles into the output with ffmpeg.
type FFmpegSubtitler struct {
	cfg *config.Config
}

// NewFFmpegSubtitler creates the default subtitling collaborator.
func NewFFmpegSubtitler(cfg *config.Config) *FFmpegSubtitler {
	return &FFmpegSubtitler{cfg: cfg}
}

// Burn implements Subtitler.
func (s *FFmpegSubtitler) Burn(ctx context.Context, src, dst string) error {
	log.Println("[postprod] Subtitling Step...")

	model := s.cfg.Postprod.WhisperModel
	if model == "" {
		model = "base"
	}

	// whisper writes <src stem>.ass into the source directory — that
	// file is the sidecar the pipeline archives afterwards.
	cmd := exec.CommandContext(ctx,
		"whisper", src,
		"--model", model,
		"--task", "translate",
		"--output_format", "ass",
		"--output_dir", filepath.Dir(src),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("whisper transcription: %w", err)
	}

	sidecar := strings.TrimSuffix(src, filepath.Ext(src)) + ".ass"
	fontSize := s.cfg.Postprod.FontSize
	if fontSize == 0 {
		fontSize = 24
	}
	subtitleFilter := fmt.Sprintf(
		"subtitles=%s:force_style='FontSize=%d,PrimaryColour=&H00FFFFFF,OutlineColour=&H00000000,Alignment=2'",
		escapeSubtitlePath(sidecar), fontSize,
	)

	burn := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", src,
		"-vf", subtitleFilter,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "20",
		"-c:a", "copy",
		dst,
	)
	burn.Stdout = os.Stdout
	burn.Stderr = os.Stderr
	if err := burn.Run(); err != nil {
		return fmt.Errorf("ffmpeg subtitle burn: %w", err)
	}

	log.Println("[postprod] Subtitling Step Complete.")
	return nil
}

// FFmpegMixer lays a looped background-music track under the video's
// narration at reduced volume.
type FFmpegMixer struct {
	cfg *config.Config
}

// NewFFmpegMixer creates the default mixing collaborator.
func NewFFmpegMixer(cfg *config.Config) *FFmpegMixer {
	return &FFmpegMixer{cfg: cfg}
}

// Mix implements Mixer. With no music track available the video is
// passed through unchanged so the final output still appears.
func (m *FFmpegMixer) Mix(ctx context.Context, src, dst string) error {
	log.Println("[postprod] Audio Mixing Step...")

	track := m.pickTrack()
	if track == "" {
		log.Println("[postprod] ⚠️ no background music track found — copying without mix")
		cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", src, "-c", "copy", dst)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("ffmpeg copy: %w", err)
		}
		return nil
	}

	filter := fmt.Sprintf(
		"[1:a]volume=%.2f[bg];[0:a][bg]amix=inputs=2:duration=first:normalize=0[aout]",
		m.cfg.Postprod.MusicVolume,
	)

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", src,
		"-stream_loop", "-1",
		"-i", track,
		"-filter_complex", filter,
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		dst,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg audio mix: %w", err)
	}
	return nil
}

// pickTrack returns the first audio file from the music directory in
// lexical order, or "" when none is available.
func (m *FFmpegMixer) pickTrack() string {
	if m.cfg.Postprod.MusicDir == "" {
		return ""
	}
	entries, err := os.ReadDir(m.cfg.Postprod.MusicDir)
	if err != nil {
		return ""
	}
	var tracks []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".mp3" || ext == ".wav" || ext == ".m4a") {
			tracks = append(tracks, e.Name())
		}
	}
	if len(tracks) == 0 {
		return ""
	}
	sort.Strings(tracks)
	return filepath.Join(m.cfg.Postprod.MusicDir, tracks[0])
}

func escapeSubtitlePath(path string) string {
	// FFmpeg subtitle filter needs escaped colons and backslashes
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ReplaceAll(path, ":", "\\:")
	return path
}
