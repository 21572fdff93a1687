package postgenerator

import (
	"context"
	"os"
	"testing"

	"github.com/menta2k/post-generator/pkg/config"
	"github.com/menta2k/post-generator/pkg/types"
)

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	cfg := config.Default()
	cfg.Canvas.Width = 400
	cfg.Canvas.Height = 500
	cfg.Canvas.Margin = 40
	cfg.Layout.TitleBaseSize = 48
	cfg.Layout.TitleMinSize = 12
	cfg.Layout.SummaryFontSize = 16
	cfg.Layout.UsernameFontSize = 12
	cfg.Output.Dir = t.TempDir()
	return NewWithConfig(cfg, nil, "")
}

func TestNew(t *testing.T) {
	gen := New()
	if gen == nil {
		t.Fatal("New returned nil")
	}
	if gen.Config() == nil {
		t.Error("Config() returned nil")
	}
	if err := gen.Config().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGeneratePost(t *testing.T) {
	gen := testGenerator(t)

	result, err := gen.GeneratePost(context.Background(), types.Item{
		Title:   "AI Revolution Begins Today",
		Summary: "Researchers unveil a system that learns new tasks from a handful of examples.",
	}, "Learning & Skills", 1)
	if err != nil {
		t.Fatalf("GeneratePost: %v", err)
	}

	if _, err := os.Stat(result.OutputPath); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if result.Category != "Learning & Skills" || result.Index != 1 {
		t.Errorf("result identity = %q #%d", result.Category, result.Index)
	}
}

func TestClassifyAndGenerate(t *testing.T) {
	gen := testGenerator(t)

	items := []types.Item{
		{Title: "Machine learning for everyone", Summary: "a new course on ai"},
		{Title: "Interview preparation guide", Summary: "resume and career tips"},
		{Title: "Unrelated announcement", Summary: "nothing to see here"},
	}

	batch := gen.ClassifyAndGenerate(context.Background(), items)

	if len(batch.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", batch.Failures)
	}
	if len(batch.Results) != len(items) {
		t.Errorf("got %d results, want %d", len(batch.Results), len(items))
	}
	for _, r := range batch.Results {
		if _, err := os.Stat(r.OutputPath); err != nil {
			t.Errorf("output %q missing: %v", r.OutputPath, err)
		}
	}
}

func TestGenerateBatchWithWorkers(t *testing.T) {
	gen := testGenerator(t)
	gen.SetWorkers(4)

	batch := gen.GenerateBatch(context.Background(), map[string][]types.Item{
		"Other": {
			{Title: "First", Summary: "one"},
			{Title: "Second", Summary: "two"},
			{Title: "Third", Summary: "three"},
		},
	})

	if len(batch.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", batch.Failures)
	}
	if len(batch.Results) != 3 {
		t.Errorf("got %d results, want 3", len(batch.Results))
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() != Version {
		t.Errorf("GetVersion() = %q, want %q", GetVersion(), Version)
	}
}
