package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/menta2k/post-generator/internal/utils"
	"github.com/menta2k/post-generator/pkg/classify"
	"github.com/menta2k/post-generator/pkg/client"
	"github.com/menta2k/post-generator/pkg/config"
	"github.com/menta2k/post-generator/pkg/llamacpp"
	"github.com/menta2k/post-generator/pkg/ollama"
	"github.com/menta2k/post-generator/pkg/pipeline"
	"github.com/menta2k/post-generator/pkg/render"
	"github.com/menta2k/post-generator/pkg/shaper"
	"github.com/menta2k/post-generator/pkg/types"
)

func main() {
	var in, raw, outDir, model, url, backend string
	var cfgPath, ext, username string
	var titleFont, regularFont string
	var quality, workers int
	var lossless bool

	flag.StringVar(&in, "in", "", "classified input JSON (category -> items)")
	flag.StringVar(&raw, "raw", "", "unclassified input JSON (flat item list, classified by keyword)")
	flag.StringVar(&outDir, "out", "", "output directory (default from config)")
	flag.StringVar(&backend, "backend", "none", "text shaping backend: ollama, llamacpp, or none")
	flag.StringVar(&model, "model", "llama3.2", "model name for the text shaping backend")
	flag.StringVar(&url, "url", "", "server URL (defaults: ollama=http://localhost:11434, llamacpp=http://localhost:8080)")

	flag.StringVar(&cfgPath, "config", "", "configuration JSON file (default built-in values)")
	flag.StringVar(&ext, "ext", "", "output format: png|jpg|webp (default from config)")
	flag.IntVar(&quality, "quality", 0, "JPEG/WebP output quality 1-100 (default from config)")
	flag.BoolVar(&lossless, "lossless", false, "WebP lossless mode")
	flag.StringVar(&username, "username", "", "handle drawn at the top of each post (default from config)")
	flag.StringVar(&titleFont, "title-font", "", "bold TTF/OTF for the headline (default embedded Go Bold)")
	flag.StringVar(&regularFont, "font", "", "regular TTF/OTF for username and summary (default embedded Go Regular)")
	flag.IntVar(&workers, "workers", 1, "parallel render workers")

	flag.Parse()
	if in == "" && raw == "" {
		log.Fatalf("usage: %s -in classified.json | -raw items.json [-backend ollama|llamacpp|none] [-out outdir]", filepath.Base(os.Args[0]))
	}
	if in != "" && raw != "" {
		log.Fatalf("-in and -raw are mutually exclusive")
	}

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadFromFile(cfgPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if ext != "" {
		cfg.Output.Format = ext
	}
	if quality != 0 {
		cfg.Output.Quality = quality
	}
	if lossless {
		cfg.Output.Lossless = true
	}
	if username != "" {
		cfg.Output.Username = username
	}
	if titleFont != "" {
		cfg.Fonts.TitlePath = titleFont
	}
	if regularFont != "" {
		cfg.Fonts.RegularPath = regularFont
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Create the text shaping client for the chosen backend; "none"
	// runs entirely on the local fallback heuristics.
	var textClient client.TextClient
	var err error

	switch backend {
	case "ollama":
		if url == "" {
			url = "http://localhost:11434"
		}
		textClient, err = ollama.NewClient(url)
		if err != nil {
			log.Fatalf("Failed to create Ollama client: %v", err)
		}
	case "llamacpp":
		if url == "" {
			url = "http://localhost:8080"
		}
		textClient, err = llamacpp.NewClient(url)
		if err != nil {
			log.Fatalf("Failed to create llama.cpp client: %v", err)
		}
	case "none":
		textClient = nil
	default:
		log.Fatalf("Unknown backend: %s (use 'ollama', 'llamacpp' or 'none')", backend)
	}

	if err := utils.EnsureDir(cfg.Output.Dir); err != nil {
		log.Fatal(err)
	}

	// Load the batch.
	var classified map[string][]types.Item
	if in != "" {
		classified, err = pipeline.LoadClassified(in)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		items, err := loadItems(raw)
		if err != nil {
			log.Fatal(err)
		}
		classified = classify.Split(items)
	}

	total := 0
	for cat, items := range classified {
		log.Printf("category %q: %d items", cat, len(items))
		total += len(items)
	}
	if total == 0 {
		log.Fatalf("no items to process")
	}

	p := pipeline.New(shaper.New(textClient, model), render.New(cfg), workers)
	batch := p.Run(context.Background(), classified)

	for _, res := range batch.Results {
		log.Printf("wrote %s", res.OutputPath)
	}
	for _, fail := range batch.Failures {
		log.Printf("failed: %v", fail)
	}
	log.Printf("done: %d generated, %d failed", len(batch.Results), len(batch.Failures))

	if len(batch.Results) == 0 {
		os.Exit(1)
	}
}

func loadItems(path string) ([]types.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []types.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
