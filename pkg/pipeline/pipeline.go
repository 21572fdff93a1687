// Package pipeline drives batch generation: it walks a classified set
// of items, shapes each one's text, and renders the post image. A
// failing item is recorded and skipped; it never stops its siblings.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/menta2k/post-generator/pkg/render"
	"github.com/menta2k/post-generator/pkg/shaper"
	"github.com/menta2k/post-generator/pkg/types"
)

// Pipeline renders every item of a classified batch.
type Pipeline struct {
	shaper   *shaper.Shaper
	renderer *render.Renderer
	workers  int
}

// BatchResult is the outcome of one batch run: the successfully written
// posts plus the per-item failures.
type BatchResult struct {
	Results  []types.PostResult
	Failures []*types.ItemError
}

// New creates a pipeline. workers below 2 selects sequential
// processing; each item is fully independent, so higher counts just fan
// the items out over that many goroutines.
func New(s *shaper.Shaper, r *render.Renderer, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{shaper: s, renderer: r, workers: workers}
}

// LoadClassified reads a category -> items JSON file, the output shape
// of the classification step.
func LoadClassified(path string) (map[string][]types.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classified input: %w", err)
	}

	var classified map[string][]types.Item
	if err := json.Unmarshal(data, &classified); err != nil {
		return nil, fmt.Errorf("failed to parse classified input: %w", err)
	}

	return classified, nil
}

type job struct {
	category string
	index    int // 1-based within the category
	item     types.Item
}

// Run generates a post image for every item in every category. Items
// are numbered 1-based per category. Failed items end up in
// BatchResult.Failures; the rest of the batch still runs.
func (p *Pipeline) Run(ctx context.Context, classified map[string][]types.Item) BatchResult {
	// Deterministic order regardless of map iteration.
	categories := make([]string, 0, len(classified))
	for cat := range classified {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var jobs []job
	for _, cat := range categories {
		for i, item := range classified[cat] {
			jobs = append(jobs, job{category: cat, index: i + 1, item: item})
		}
	}

	if p.workers == 1 {
		var result BatchResult
		for _, j := range jobs {
			p.runOne(ctx, j, &result)
		}
		return result
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result BatchResult
	)
	ch := make(chan job)
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range ch {
				var local BatchResult
				p.runOne(ctx, j, &local)
				mu.Lock()
				result.Results = append(result.Results, local.Results...)
				result.Failures = append(result.Failures, local.Failures...)
				mu.Unlock()
			}
		}()
	}
	for _, j := range jobs {
		ch <- j
	}
	close(ch)
	wg.Wait()

	sort.Slice(result.Results, func(i, k int) bool {
		a, b := result.Results[i], result.Results[k]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Index < b.Index
	})
	sort.Slice(result.Failures, func(i, k int) bool {
		a, b := result.Failures[i], result.Failures[k]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Index < b.Index
	})
	return result
}

// GenerateOne shapes and renders a single item.
func (p *Pipeline) GenerateOne(ctx context.Context, item types.Item, category string, index int) (types.PostResult, error) {
	shaped := p.shaper.Shape(ctx, item)
	return p.renderer.RenderToFile(shaped, category, index)
}

func (p *Pipeline) runOne(ctx context.Context, j job, result *BatchResult) {
	res, err := p.GenerateOne(ctx, j.item, j.category, j.index)
	if err != nil {
		var itemErr *types.ItemError
		if ie, ok := err.(*types.ItemError); ok {
			itemErr = ie
		} else {
			itemErr = &types.ItemError{Category: j.category, Index: j.index, Err: err}
		}
		result.Failures = append(result.Failures, itemErr)
		return
	}
	result.Results = append(result.Results, res)
}
