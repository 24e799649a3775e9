package main

import (
	"context"
	"log"
	"os"

	ideas "finn-content-pipeline/01_ideas"
	"finn-content-pipeline/config"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env (local dev only — CI uses secrets)
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	sheets := ideas.NewSheetSync(ctx)

	gen, err := ideas.New(ctx, cfg, sheets)
	if err != nil {
		log.Fatalf("Failed to init idea generator: %v", err)
	}
	defer gen.Close()

	// `ideas podcast` generates podcast ideas instead of conversations.
	if len(os.Args) > 1 && os.Args[1] == "podcast" {
		if err := gen.GeneratePodcasts(ctx); err != nil {
			log.Fatalf("❌ Podcast idea generation failed: %v", err)
		}
		return
	}

	if err := gen.GenerateConversations(ctx); err != nil {
		log.Fatalf("❌ Idea generation failed: %v", err)
	}
}
