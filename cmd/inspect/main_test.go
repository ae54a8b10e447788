package main

import (
	"testing"

	"github.com/Noofbiz/denseCorr/datasets"
)

func TestParseMatches(t *testing.T) {
	got, err := parseMatches("240:320, 0:1", 640)
	if err != nil {
		t.Fatalf("parseMatches error: %v", err)
	}
	if len(got) != 2 || got[0] != 240*640+320 || got[1] != 1 {
		t.Fatalf("unexpected matches: %v", got)
	}
	if _, err := parseMatches("", 640); err == nil {
		t.Fatalf("expected error for empty matches")
	}
	if _, err := parseMatches("1:2:3", 640); err == nil {
		t.Fatalf("expected error for malformed match")
	}
}

func TestSplitByBox(t *testing.T) {
	item, err := datasets.NewItem(4, 3, []int64{5}, []int64{5})
	if err != nil {
		t.Fatalf("NewItem failed: %v", err)
	}
	// rows 0..1, cols 0..1 -> pixels 0,1,4,5; 5 is the match
	masked, background := splitByBox(item, box{0, 0, 1, 1})
	if len(masked) != 3 || masked[0] != 0 || masked[1] != 1 || masked[2] != 4 {
		t.Fatalf("unexpected masked pool: %v", masked)
	}
	if len(background) != 12-4 {
		t.Fatalf("expected 8 background pixels, got %v", background)
	}

	b, err := resolveMaskBox("", item)
	if err != nil {
		t.Fatalf("resolveMaskBox error: %v", err)
	}
	if !b.contains(1, 1) || b.contains(1, 200) {
		t.Fatalf("default box should be centred on the match: %+v", b)
	}
}
