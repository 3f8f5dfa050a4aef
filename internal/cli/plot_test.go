package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/graphport/graphport/pkg/dataset"
	"github.com/graphport/graphport/pkg/graphin"
	"github.com/graphport/graphport/pkg/plot"
	"github.com/graphport/graphport/pkg/table"
)

func TestBuildPlotterRequiresInput(t *testing.T) {
	_, err := buildPlotter(plotFlags{source: "s", destination: "d"})
	if err == nil || !strings.Contains(err.Error(), "--edges or --dot") {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestBuildPlotterFromCSV(t *testing.T) {
	dir := t.TempDir()
	edgesPath := filepath.Join(dir, "edges.csv")
	if err := os.WriteFile(edgesPath, []byte("src,dst\na,b\nb,c\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := buildPlotter(plotFlags{
		edges:       edgesPath,
		source:      "src",
		destination: "dst",
		pointColor:  "kind",
	})
	if err != nil {
		t.Fatalf("build plotter: %v", err)
	}

	b := p.BindingsSnapshot()
	if b.Source != "src" || b.Destination != "dst" || b.PointColor != "kind" {
		t.Errorf("unexpected bindings: %+v", b)
	}
	edges, ok := p.EdgesInput().(*table.Table)
	if !ok || edges.Len() != 2 {
		t.Fatalf("unexpected edge input: %v", p.EdgesInput())
	}
}

func TestBuildPlotterFromDOT(t *testing.T) {
	dir := t.TempDir()
	dotPath := filepath.Join(dir, "graph.dot")
	if err := os.WriteFile(dotPath, []byte("digraph { a -> b; }"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := buildPlotter(plotFlags{dot: dotPath, source: "s", destination: "d"})
	if err != nil {
		t.Fatalf("build plotter: %v", err)
	}
	if p.EdgesInput() == nil {
		t.Fatal("dot graph not set as input")
	}
}

func TestWriteDryRunRecords(t *testing.T) {
	edges, err := table.FromColumns(
		table.Column{Name: "s", Values: []any{"a"}},
		table.Column{Name: "d", Values: []any{"b"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	spec := plot.Spec{
		Source: "s", Destination: "d",
		EdgeFeatures:  map[string]string{},
		PointFeatures: map[string]string{},
		Name:          "dry",
	}
	ds, err := dataset.Build(spec, graphin.Pair{Edges: edges, NodeID: plot.DefaultNodeID}, dataset.FormatRecords)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "payload.json")
	if err := writeDryRun(ds, out); err != nil {
		t.Fatalf("write dry run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload["type"] != "edgelist" || payload["name"] != "dry" {
		t.Errorf("unexpected payload: %v", payload)
	}
}
