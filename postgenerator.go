// Package postgenerator renders social media post images from article
// titles and summaries.
//
// Each post is a fixed-size canvas carrying a username header, an
// auto-sized headline with one highlighted phrase, and a short summary.
// The title font size is searched downward until the headline fits the
// content width in at most a few lines; text never overflows the canvas
// except for the documented case of a single unbreakable word wider
// than the content area.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		postgenerator "github.com/menta2k/post-generator"
//		"github.com/menta2k/post-generator/pkg/types"
//	)
//
//	func main() {
//		gen := postgenerator.New()
//
//		item := types.Item{
//			Title:   "AI Revolution Begins Today",
//			Summary: "Researchers unveil a system that learns new tasks from a handful of examples.",
//		}
//
//		result, err := gen.GeneratePost(context.Background(), item, "Learning & Skills", 1)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("saved %s\n", result.OutputPath)
//	}
//
// An optional language model (Ollama or a llama.cpp server) shortens
// long titles, picks the highlight phrase, and rewrites summaries.
// Without one, or whenever the model misbehaves, deterministic local
// heuristics take over, so generation always succeeds up to the final
// file write.
package postgenerator

import (
	"context"

	"github.com/menta2k/post-generator/pkg/classify"
	"github.com/menta2k/post-generator/pkg/client"
	"github.com/menta2k/post-generator/pkg/config"
	"github.com/menta2k/post-generator/pkg/pipeline"
	"github.com/menta2k/post-generator/pkg/render"
	"github.com/menta2k/post-generator/pkg/shaper"
	"github.com/menta2k/post-generator/pkg/types"
)

// Version of the post generator library
const Version = "1.0.0"

// Generator bundles the text shaper, renderer, and batch pipeline.
type Generator struct {
	cfg      *config.Config
	shaper   *shaper.Shaper
	renderer *render.Renderer
	pipeline *pipeline.Pipeline
}

// New creates a Generator with the default configuration and no
// language model: all text shaping uses the local heuristics.
func New() *Generator {
	return NewWithConfig(config.Default(), nil, "")
}

// NewWithConfig creates a Generator with a custom configuration and an
// optional text client (nil disables model-backed shaping).
func NewWithConfig(cfg *config.Config, textClient client.TextClient, model string) *Generator {
	s := shaper.New(textClient, model)
	r := render.New(cfg)
	return &Generator{
		cfg:      cfg,
		shaper:   s,
		renderer: r,
		pipeline: pipeline.New(s, r, 1),
	}
}

// SetWorkers sets the parallelism for batch generation. Items are
// independent, so any worker count is safe.
func (g *Generator) SetWorkers(n int) {
	g.pipeline = pipeline.New(g.shaper, g.renderer, n)
}

// GeneratePost shapes and renders a single item into the configured
// output tree.
func (g *Generator) GeneratePost(ctx context.Context, item types.Item, category string, index int) (types.PostResult, error) {
	return g.pipeline.GenerateOne(ctx, item, category, index)
}

// GenerateBatch renders every item of an already classified batch.
func (g *Generator) GenerateBatch(ctx context.Context, classified map[string][]types.Item) pipeline.BatchResult {
	return g.pipeline.Run(ctx, classified)
}

// ClassifyAndGenerate buckets raw items into categories by keyword and
// renders them all.
func (g *Generator) ClassifyAndGenerate(ctx context.Context, items []types.Item) pipeline.BatchResult {
	return g.pipeline.Run(ctx, classify.Split(items))
}

// Config returns the generator's configuration.
func (g *Generator) Config() *config.Config {
	return g.cfg
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
