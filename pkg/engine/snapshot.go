package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultSnapshotPath is where audit snapshots are written when no path is given
const DefaultSnapshotPath = ".govaudit-snapshot.json"

// AuditDiff compares two audit passes by stable vulnerability id
type AuditDiff struct {
	New       []Risk `json:"new" yaml:"new"`
	Resolved  []Risk `json:"resolved" yaml:"resolved"`
	Unchanged []Risk `json:"unchanged" yaml:"unchanged"`
}

// CompareAudits reports vulnerabilities that appeared, disappeared or
// persisted between baseline and current
func CompareAudits(baseline, current AuditResult) AuditDiff {
	diff := AuditDiff{
		New:       []Risk{},
		Resolved:  []Risk{},
		Unchanged: []Risk{},
	}

	before := make(map[string]bool, len(baseline.Vulnerabilities))
	for _, v := range baseline.Vulnerabilities {
		before[v.ID] = true
	}
	after := make(map[string]bool, len(current.Vulnerabilities))
	for _, v := range current.Vulnerabilities {
		after[v.ID] = true
		if before[v.ID] {
			diff.Unchanged = append(diff.Unchanged, v.clone())
		} else {
			diff.New = append(diff.New, v.clone())
		}
	}

	for _, v := range baseline.Vulnerabilities {
		if !after[v.ID] {
			diff.Resolved = append(diff.Resolved, v.clone())
		}
	}
	return diff
}

// SaveAudit writes an audit result to a JSON snapshot file
func SaveAudit(path string, result AuditResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// LoadAudit reads a snapshot written by SaveAudit
func LoadAudit(path string) (AuditResult, error) {
	var result AuditResult
	data, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return result, nil
}
