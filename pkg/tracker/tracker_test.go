package tracker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/specforge-ai/specforge/pkg/models"
)

func newTestTracker(t *testing.T) *SQLiteTracker {
	t.Helper()
	tr, err := New(filepath.Join(t.TempDir(), "tracker_test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestRecordAndQuery(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	rec := models.UsageRecord{
		Provider:         "openai",
		Model:            "gpt-4o",
		Command:          "analyze",
		PromptTokens:     120,
		CompletionTokens: 450,
		TotalTokens:      570,
	}
	if err := tr.Record(ctx, rec); err != nil {
		t.Fatal(err)
	}

	records, err := tr.Query(ctx, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].TotalTokens != 570 {
		t.Errorf("total tokens = %d, want 570", records[0].TotalTokens)
	}
	if records[0].Command != "analyze" {
		t.Errorf("command = %q, want analyze", records[0].Command)
	}
}

func TestQuerySinceFiltersOldRecords(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	old := models.UsageRecord{
		Provider: "openai", Model: "gpt-4o",
		TotalTokens: 10, CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	recent := models.UsageRecord{
		Provider: "openai", Model: "gpt-4o",
		TotalTokens: 20,
	}
	if err := tr.Record(ctx, old); err != nil {
		t.Fatal(err)
	}
	if err := tr.Record(ctx, recent); err != nil {
		t.Fatal(err)
	}

	records, err := tr.Query(ctx, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record since cutoff, got %d", len(records))
	}
	if records[0].TotalTokens != 20 {
		t.Errorf("expected the recent record, got tokens=%d", records[0].TotalTokens)
	}
}

func TestSummary(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	for _, rec := range []models.UsageRecord{
		{Provider: "openai", Model: "gpt-4o", PromptTokens: 100, CompletionTokens: 200, TotalTokens: 300},
		{Provider: "openai", Model: "gpt-4o", PromptTokens: 50, CompletionTokens: 50, TotalTokens: 100, Cached: true},
		{Provider: "anthropic", Model: "claude-3-opus", PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
	} {
		if err := tr.Record(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	summaries, err := tr.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	// Ordered by total tokens descending.
	if summaries[0].Model != "gpt-4o" {
		t.Errorf("expected gpt-4o first, got %s", summaries[0].Model)
	}
	if summaries[0].RequestCount != 2 || summaries[0].TotalTokens != 400 {
		t.Errorf("gpt-4o summary = %+v", summaries[0])
	}
	if summaries[0].CachedCount != 1 {
		t.Errorf("cached count = %d, want 1", summaries[0].CachedCount)
	}
}
