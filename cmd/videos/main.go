package main

import (
	"context"
	"log"
	"os"

	video "finn-content-pipeline/05_video"
	"finn-content-pipeline/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	rep, err := video.New(cfg).Run(context.Background())
	if err != nil {
		log.Fatalf("❌ Video assembly failed: %v", err)
	}
	if len(rep.Failed()) > 0 {
		os.Exit(1)
	}
}
