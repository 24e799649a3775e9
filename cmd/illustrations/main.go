package main

import (
	"context"
	"log"
	"os"

	illustrations "finn-content-pipeline/04_illustrations"
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
	gen, err := illustrations.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to init illustration generator: %v", err)
	}
	defer gen.Close()

	rep, err := gen.Run(ctx)
	if err != nil {
		log.Fatalf("❌ Illustration generation failed: %v", err)
	}
	if len(rep.Failed()) > 0 {
		os.Exit(1)
	}
}
