package engine

import (
	"path/filepath"
	"testing"
)

func TestCompareAudits(t *testing.T) {
	// 1. Baseline: two findings
	baseline := AuditResult{Vulnerabilities: []Risk{
		{ID: "V-L1-a", Severity: SeverityCritical}, // Will be UNCHANGED
		{ID: "V-L3-b", Severity: SeverityHigh},     // Will be RESOLVED
	}}

	// 2. Current pass
	current := AuditResult{Vulnerabilities: []Risk{
		{ID: "V-L1-a", Severity: SeverityCritical},
		{ID: "V-L7-c", Severity: SeverityMedium}, // NEW
	}}

	diff := CompareAudits(baseline, current)

	if len(diff.Unchanged) != 1 || diff.Unchanged[0].ID != "V-L1-a" {
		t.Errorf("Expected V-L1-a unchanged, got %+v", diff.Unchanged)
	}
	if len(diff.New) != 1 || diff.New[0].ID != "V-L7-c" {
		t.Errorf("Expected V-L7-c new, got %+v", diff.New)
	}
	if len(diff.Resolved) != 1 || diff.Resolved[0].ID != "V-L3-b" {
		t.Errorf("Expected V-L3-b resolved, got %+v", diff.Resolved)
	}
}

func TestTraceExposure(t *testing.T) {
	tools := []Tool{
		{ID: "model", Name: "Claude", Layer: 1},
		{ID: "hub", Name: "Zapier", Layer: 7},
		{ID: "shadow", Name: "Browser Copilot", Layer: 3, Risky: true},
		{ID: "island", Name: "Offline", Layer: 1},
	}
	conns := []Connection{{A: "shadow", B: "hub"}, {A: "model", B: "hub"}}

	paths := TraceExposure(tools, conns)
	if len(paths) != 1 {
		t.Fatalf("Expected 1 exposure path, got %d", len(paths))
	}
	p := paths[0]
	if p.From != "shadow" || p.To != "model" || len(p.Steps) != 3 {
		t.Errorf("Unexpected path %+v", p)
	}

	names := map[string]string{"model": "Claude", "hub": "Zapier", "shadow": "Browser Copilot"}
	want := "Shadow AI tool Browser Copilot reaches foundation model Claude via Zapier"
	if got := p.Story(names); got != want {
		t.Errorf("Story() = %q, want %q", got, want)
	}
}

func TestSaveAndLoadAudit(t *testing.T) {
	layer := 1
	result := AuditResult{
		Vulnerabilities: []Risk{{ID: "V-L1-a", Severity: SeverityCritical, Layer: &layer}},
		Mitigations:     []Mitigation{{ID: "M-01", Layers: []int{1}, Status: StatusProposed}},
		Pattern:         PatternSingleAgent,
	}

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := SaveAudit(path, result); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := LoadAudit(path)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if len(loaded.Vulnerabilities) != 1 || loaded.Vulnerabilities[0].LayerID() != 1 {
		t.Errorf("Expected the saved vulnerability back, got %+v", loaded.Vulnerabilities)
	}

	diff := CompareAudits(loaded, AuditResult{})
	if len(diff.Resolved) != 1 {
		t.Errorf("Expected 1 resolved finding, got %d", len(diff.Resolved))
	}

	if _, err := LoadAudit(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected an error for a missing snapshot")
	}
}
