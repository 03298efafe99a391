// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/content-workflow/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// clock returns a now func that advances one minute per call.
func clock() func() time.Time {
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Minute)
	}
}

func sampleRecord(topic string) types.WorkflowRecord {
	return types.WorkflowRecord{
		ResearchData: &types.ResearchRecord{Topic: topic, Keywords: []string{"a", "b"}, Report: "report"},
		DraftContent: &types.DraftRecord{Topic: topic, Content: "draft", WordCount: 1500},
		FinalContent: &types.FinalRecord{Content: "final", SEOOptimized: true},
		CreativeSuggestions: []types.CreativeRecord{
			{ContentTitle: topic, Count: 1, GeneratedImages: []types.GeneratedImage{{Number: 1, Filename: "x.txt"}}},
		},
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "history.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created at %s: %v", path, err)
	}
}

func TestArchiveAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	rec := sampleRecord("Solar power")
	if err := store.Archive(ctx, "01J0SESSION", "", rec); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "01J0SESSION")
	if err != nil {
		t.Fatal(err)
	}
	if got.Topic != "Solar power" {
		t.Errorf("topic = %q, want topic taken from research data", got.Topic)
	}
	if !got.HasFinal || got.Creatives != 1 {
		t.Errorf("summary = %+v, want has_final and 1 creative", got.Entry)
	}
	if got.Record.FinalContent == nil || got.Record.FinalContent.Content != "final" {
		t.Errorf("final content not restored: %+v", got.Record.FinalContent)
	}
	if len(got.Record.CreativeSuggestions) != 1 || got.Record.CreativeSuggestions[0].GeneratedImages[0].Filename != "x.txt" {
		t.Errorf("creative history not restored: %+v", got.Record.CreativeSuggestions)
	}
	if got.ArchivedAt.IsZero() {
		t.Error("archived_at not set")
	}
}

func TestArchiveReplacesSameID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Archive(ctx, "s1", "first", types.WorkflowRecord{}); err != nil {
		t.Fatal(err)
	}
	if err := store.Archive(ctx, "s1", "second", sampleRecord("second")); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(ctx, ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Topic != "second" {
		t.Errorf("entries = %+v, want one entry with topic second", entries)
	}
}

func TestArchiveEmptyID(t *testing.T) {
	store := testStore(t)
	if err := store.Archive(context.Background(), "", "t", types.WorkflowRecord{}); err == nil {
		t.Error("expected error for empty session ID")
	}
}

func TestListOrderAndFilters(t *testing.T) {
	store := testStore(t)
	store.now = clock()
	ctx := context.Background()

	for _, s := range []struct{ id, topic string }{
		{"s1", "Solar power basics"},
		{"s2", "Wind farms"},
		{"s3", "Home solar panels"},
	} {
		if err := store.Archive(ctx, s.id, s.topic, types.WorkflowRecord{}); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{name: "all newest first", opts: ListOptions{}, want: []string{"s3", "s2", "s1"}},
		{name: "limit", opts: ListOptions{Limit: 2}, want: []string{"s3", "s2"}},
		{name: "topic filter is case-insensitive", opts: ListOptions{Topic: "SOLAR"}, want: []string{"s3", "s1"}},
		{name: "no match", opts: ListOptions{Topic: "hydro"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.List(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			var ids []string
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("ids = %v, want %v", ids, tt.want)
					break
				}
			}
		})
	}
}

func TestGetNotFound(t *testing.T) {
	store := testStore(t)
	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
