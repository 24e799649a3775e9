package main

import (
	"context"
	"log"
	"os"

	postprod "finn-content-pipeline/06_postprod"
	"finn-content-pipeline/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pipeline := postprod.New(cfg,
		postprod.NewFFmpegSubtitler(cfg),
		postprod.NewFFmpegMixer(cfg),
	)

	rep, err := pipeline.Run(context.Background())
	if err != nil {
		log.Fatalf("❌ Post-production failed: %v", err)
	}
	if len(rep.Failed()) > 0 {
		os.Exit(1)
	}
}
