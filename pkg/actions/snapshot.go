package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/govaudit/pkg/engine"
	"github.com/user/govaudit/pkg/store"
)

// SaveSnapshotAction writes the latest audit result to a file for later comparison
type SaveSnapshotAction struct {
	Store *store.Store
}

func (a *SaveSnapshotAction) Name() string {
	return "save-snapshot"
}

func (a *SaveSnapshotAction) Description() string {
	return "Saves the latest audit result to a snapshot file"
}

func (a *SaveSnapshotAction) Usage() string {
	return "save-snapshot [file=<path>]"
}

func (a *SaveSnapshotAction) Execute(ctx context.Context, args Args, progress func(string)) (string, error) {
	path := args.String("file", engine.DefaultSnapshotPath)
	a.Store.Refresh()
	result := a.Store.AuditResult()
	if err := engine.SaveAudit(path, result); err != nil {
		return "", err
	}
	return fmt.Sprintf("Saved %d findings to snapshot '%s'.", len(result.Vulnerabilities), path), nil
}

// DiffSnapshotAction compares the latest audit result with a saved baseline
type DiffSnapshotAction struct {
	Store *store.Store
}

func (a *DiffSnapshotAction) Name() string {
	return "diff-snapshot"
}

func (a *DiffSnapshotAction) Description() string {
	return "Compares the latest audit with a saved snapshot"
}

func (a *DiffSnapshotAction) Usage() string {
	return "diff-snapshot [file=<path>]"
}

func (a *DiffSnapshotAction) Execute(ctx context.Context, args Args, progress func(string)) (string, error) {
	path := args.String("file", engine.DefaultSnapshotPath)
	baseline, err := engine.LoadAudit(path)
	if err != nil {
		return "", err
	}
	a.Store.Refresh()
	progress("Comparing with baseline...")
	return FormatDiff(engine.CompareAudits(baseline, a.Store.AuditResult())), nil
}

// FormatDiff renders an audit diff as plain text
func FormatDiff(diff engine.AuditDiff) string {
	var sb strings.Builder
	section := func(title string, risks []engine.Risk) {
		sb.WriteString(fmt.Sprintf("%s (%d)\n", title, len(risks)))
		for _, r := range risks {
			sb.WriteString(fmt.Sprintf("  [%s] %s %s\n", strings.ToUpper(string(r.Severity)), r.ID, r.Description))
		}
	}
	section("New", diff.New)
	section("Resolved", diff.Resolved)
	section("Unchanged", diff.Unchanged)
	return sb.String()
}
