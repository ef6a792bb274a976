package memory

import (
	"context"
	"testing"

	"clogen/pkg/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if _, found, err := store.Load(ctx); err != nil || found {
		t.Fatalf("load before save: found=%v err=%v", found, err)
	}

	doc := domain.OverrideDocument{
		AttributeObjectives: map[string][]string{"IEG1": {"PEO1"}},
	}
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := store.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if got := loaded.AttributeObjectives["IEG1"]; len(got) != 1 || got[0] != "PEO1" {
		t.Fatalf("loaded objectives = %v", got)
	}
}

func TestStoreIsolatesDocuments(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	doc := domain.OverrideDocument{
		Indicators: map[string]string{"PLO1": "original"},
	}
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc.Indicators["PLO1"] = "mutated after save"

	loaded, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Indicators["PLO1"] != "original" {
		t.Fatal("store shares caller document")
	}

	loaded.Indicators["PLO1"] = "mutated after load"
	again, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if again.Indicators["PLO1"] != "original" {
		t.Fatal("store shares loaded document")
	}
}

func TestCloseIsNoop(t *testing.T) {
	store := NewStore()
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := store.Save(context.Background(), domain.OverrideDocument{}); err != nil {
		t.Fatalf("save after close: %v", err)
	}
}
