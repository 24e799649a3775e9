package main

import (
	"context"
	"log"
	"os"

	script "finn-content-pipeline/02_script"
	"finn-content-pipeline/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// `scripts podcast` writes podcast scripts from podcast_ideas.json.
	if len(os.Args) > 1 && os.Args[1] == "podcast" {
		writer, err := script.NewPodcastWriter(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to init podcast writer: %v", err)
		}
		defer writer.Close()
		rep, err := writer.Run(ctx)
		if err != nil {
			log.Fatalf("❌ Podcast script generation failed: %v", err)
		}
		if len(rep.Failed()) > 0 {
			os.Exit(1)
		}
		return
	}

	writer, err := script.NewWriter(cfg)
	if err != nil {
		log.Fatalf("Failed to init script writer: %v", err)
	}
	rep, err := writer.Run(ctx)
	if err != nil {
		log.Fatalf("❌ Script generation failed: %v", err)
	}
	if len(rep.Failed()) > 0 {
		os.Exit(1)
	}
}
