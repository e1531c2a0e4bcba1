package topology

import (
	"errors"
	"testing"

	"metrobus/internal/domain"
)

var line = []string{"Peshawar Morr", "British Homes", "I/10 Stop", "I-9", "I-8", "Faizabad"}

func mustTopology(t *testing.T) *Topology {
	t.Helper()
	topo, err := New(line)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return topo
}

func TestNewRejectsBadLines(t *testing.T) {
	cases := map[string][]string{
		"too short": {"Only"},
		"empty":     {"A", " "},
		"duplicate": {"A", "B", "A"},
	}
	for name, names := range cases {
		if _, err := New(names); !errors.Is(err, domain.ErrInvalidStation) {
			t.Fatalf("%s: expected ErrInvalidStation, got %v", name, err)
		}
	}
}

func TestOverlaps(t *testing.T) {
	topo := mustTopology(t)
	cases := []struct {
		a1, a2, b1, b2 string
		want           bool
	}{
		{"Peshawar Morr", "I-9", "British Homes", "Faizabad", true},
		{"Peshawar Morr", "I-9", "I-9", "Faizabad", false},
		{"I-9", "Faizabad", "Peshawar Morr", "I-9", false},
		{"Peshawar Morr", "Faizabad", "I-8", "Faizabad", true},
		{"British Homes", "I/10 Stop", "I-8", "Faizabad", false},
	}
	for _, c := range cases {
		got, err := topo.Overlaps(c.a1, c.a2, c.b1, c.b2)
		if err != nil {
			t.Fatalf("Overlaps(%s,%s,%s,%s) error: %v", c.a1, c.a2, c.b1, c.b2, err)
		}
		if got != c.want {
			t.Fatalf("Overlaps(%s,%s,%s,%s) = %v, want %v", c.a1, c.a2, c.b1, c.b2, got, c.want)
		}
	}
}

func TestOverlapsUnknownStation(t *testing.T) {
	topo := mustTopology(t)
	_, err := topo.Overlaps("Peshawar Morr", "Nowhere", "I-9", "Faizabad")
	if !errors.Is(err, domain.ErrInvalidStation) {
		t.Fatalf("expected ErrInvalidStation, got %v", err)
	}
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error type, got %T", err)
	}
}

func TestSegmentOrder(t *testing.T) {
	topo := mustTopology(t)
	seg, err := topo.Segment("British Homes", "I-8")
	if err != nil {
		t.Fatalf("Segment error: %v", err)
	}
	if seg.Start != 1 || seg.End != 4 {
		t.Fatalf("unexpected segment %+v", seg)
	}
	if _, err := topo.Segment("I-8", "British Homes"); !errors.Is(err, domain.ErrInvalidSegment) {
		t.Fatalf("expected ErrInvalidSegment for reversed pair, got %v", err)
	}
	if _, err := topo.Segment("I-8", "I-8"); !errors.Is(err, domain.ErrInvalidSegment) {
		t.Fatalf("expected ErrInvalidSegment for empty pair, got %v", err)
	}
}

func TestOriginsAndDestinations(t *testing.T) {
	topo := mustTopology(t)
	origins := topo.Origins()
	if len(origins) != len(line)-1 || origins[len(origins)-1] != "I-8" {
		t.Fatalf("unexpected origins %v", origins)
	}
	dests, err := topo.Destinations("I-9")
	if err != nil {
		t.Fatalf("Destinations error: %v", err)
	}
	if len(dests) != 2 || dests[0] != "I-8" || dests[1] != "Faizabad" {
		t.Fatalf("unexpected destinations %v", dests)
	}
	last, err := topo.Destinations("Faizabad")
	if err != nil || len(last) != 0 {
		t.Fatalf("expected no destinations after terminus, got %v (%v)", last, err)
	}
}
