package readlai

import (
	"encoding/json"
	"testing"
)

func TestSnapshot(t *testing.T) {
	snap := NewSnapshot()
	snap.Set("k", "v")

	if v, ok := snap.Get("k"); !ok || v != "v" {
		t.Errorf("Get(k) = %q, %v", v, ok)
	}
	if _, ok := snap.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}
	if snap.Len() != 1 {
		t.Errorf("Len() = %d, want 1", snap.Len())
	}
}

func TestSnapshot_NilSafe(t *testing.T) {
	var snap *Snapshot

	if _, ok := snap.Get("k"); ok {
		t.Error("nil snapshot should miss")
	}
	if snap.Len() != 0 {
		t.Error("nil snapshot should be empty")
	}
	if snap.Clone().Len() != 0 {
		t.Error("clone of nil snapshot should be empty")
	}

	zero := &Snapshot{}
	zero.Set("k", "v")
	if zero.Len() != 1 {
		t.Error("Set should initialize the map")
	}
}

func TestSnapshot_CloneIsDeep(t *testing.T) {
	snap := NewSnapshot()
	snap.Set("k", "v")

	clone := snap.Clone()
	clone.Set("k", "changed")
	clone.Set("k2", "v2")

	if v, _ := snap.Get("k"); v != "v" {
		t.Errorf("original modified through clone: %q", v)
	}
	if snap.Len() != 1 {
		t.Errorf("original grew through clone: %d", snap.Len())
	}
}

func TestSnapshot_JSON(t *testing.T) {
	snap := NewSnapshot()
	snap.Set("d|d:0|abc|m|es", "Hola")

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"entries":{"d|d:0|abc|m|es":"Hola"}}` {
		t.Errorf("Unexpected document: %s", data)
	}
}

func TestWordLookup_JSON(t *testing.T) {
	data, err := json.Marshal(WordLookup{Definitions: []Definition{{PartOfSpeech: "verb", Meanings: "correr"}}})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"definitions":[{"pos":"verb","meanings":"correr"}]}` {
		t.Errorf("Unexpected document: %s", data)
	}
}
