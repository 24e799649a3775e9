package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"finn-content-pipeline/config"

	"github.com/joho/godotenv"
)

// cleanup removes every generated artifact — ideas files, scripts,
// audio, illustrations, videos, subtitles and temp files — after an
// interactive confirmation.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dirs := []string{
		cfg.Paths.Scripts,
		cfg.Paths.PodcastScripts,
		cfg.Paths.Audio,
		cfg.Paths.Illustrations,
		cfg.Paths.Videos,
		cfg.Paths.Final,
		cfg.Paths.Subtitles,
		cfg.Paths.Temp,
	}
	files := []string{
		cfg.Paths.IdeasFile,
		cfg.Paths.PodcastIdeasFile,
	}

	fmt.Println("This will delete the following generated content:")
	for _, d := range dirs {
		fmt.Printf("  - %s/ (directory)\n", d)
	}
	for _, f := range files {
		fmt.Printf("  - %s\n", f)
	}
	fmt.Print("Continue? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Aborted — nothing was deleted.")
		return
	}

	for _, d := range dirs {
		if err := os.RemoveAll(d); err != nil {
			log.Printf("⚠️ could not remove %s: %v", d, err)
			continue
		}
		log.Printf("Removed directory: %s", d)
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("⚠️ could not remove %s: %v", f, err)
			}
			continue
		}
		log.Printf("Removed file: %s", f)
	}
	log.Println("✅ Cleanup complete.")
}
