package main

import (
	"context"
	"log"
	"os"

	audio "finn-content-pipeline/03_audio"
	"finn-content-pipeline/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gen, err := audio.New(cfg)
	if err != nil {
		log.Fatalf("Failed to init TTS generator: %v", err)
	}

	// `tts podcast` synthesizes podcast scripts; the podcast_ prefix
	// keeps the files apart from conversation audio in the shared
	// mp3 directory.
	scriptsDir, prefix := cfg.Paths.Scripts, ""
	if len(os.Args) > 1 && os.Args[1] == "podcast" {
		scriptsDir, prefix = cfg.Paths.PodcastScripts, "podcast_"
	}

	rep, err := gen.Run(context.Background(), scriptsDir, prefix)
	if err != nil {
		log.Fatalf("❌ Audio generation failed: %v", err)
	}
	if len(rep.Failed()) > 0 {
		os.Exit(1)
	}
}
