package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/govaudit/pkg/engine"
	"github.com/user/govaudit/pkg/report"
	"github.com/user/govaudit/pkg/roadmap"
	"github.com/user/govaudit/pkg/store"
)

// AnalysisActions run audits and render their results
func AnalysisActions(s *store.Store) []Action {
	return []Action{
		Func{
			ActionName: "audit",
			Summary:    "Runs an audit pass and lists unmitigated vulnerabilities",
			Syntax:     "audit",
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				progress("Mapping inventory to threat layers...")
				return FormatAudit(s.RunAudit(), s.GovernanceScore()), nil
			},
		},
		Func{
			ActionName: "score",
			Summary:    "Shows governance, adoption and friction cost",
			Syntax:     "score",
			Run: refreshed(s, func(ctx context.Context, args Args, progress func(string)) (string, error) {
				snap := s.Snapshot()
				return fmt.Sprintf("Governance: %d/100\nAdoption: %d/100\nFriction cost: $%.2f/month (%d logged risks)\nMaturity overall: %.2f/4",
					snap.GovernanceScore, snap.AdoptionScore, snap.FrictionCost, len(snap.RiskLog), snap.Maturity.Overall), nil
			}),
		},
		Func{
			ActionName: "mitigations",
			Summary:    "Lists tracked mitigations and their status",
			Syntax:     "mitigations",
			Run: refreshed(s, func(ctx context.Context, args Args, progress func(string)) (string, error) {
				items := s.Mitigations()
				if len(items) == 0 {
					return "No mitigations tracked yet. The library is proposed once an audit finds vulnerabilities.", nil
				}
				var sb strings.Builder
				for _, m := range items {
					sb.WriteString(fmt.Sprintf("[%s] %s %s (layers %v)\n", m.Status, m.ID, m.Title, m.Layers))
				}
				return sb.String(), nil
			}),
		},
		Func{
			ActionName: "roadmap",
			Summary:    "Plans the phased remediation roadmap",
			Syntax:     "roadmap",
			Run: refreshed(s, func(ctx context.Context, args Args, progress func(string)) (string, error) {
				return roadmap.Markdown(s.Roadmap()), nil
			}),
		},
		Func{
			ActionName: "trace",
			Summary:    "Traces connection paths from Shadow AI tools to foundation models",
			Syntax:     "trace",
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				return FormatExposure(s.Tools(), s.Connections()), nil
			},
		},
		Func{
			ActionName: "summary",
			Summary:    "Builds the executive summary",
			Syntax:     "summary",
			Run: refreshed(s, func(ctx context.Context, args Args, progress func(string)) (string, error) {
				sum := report.NewBuilder(s.Taxonomy()).Build(s.Snapshot())
				var sb strings.Builder
				sb.WriteString(sum.ExecutiveSummary + "\n")
				sb.WriteString(sum.GovernanceGap + "\n")
				for _, m := range sum.TopMitigations {
					sb.WriteString("  - " + m + "\n")
				}
				return sb.String(), nil
			}),
		},
	}
}

// refreshed runs a pending audit pass before run so reads never see results
// older than the last mutation. Consecutive mutations share one pass.
func refreshed(s *store.Store, run func(context.Context, Args, func(string)) (string, error)) func(context.Context, Args, func(string)) (string, error) {
	return func(ctx context.Context, args Args, progress func(string)) (string, error) {
		if s.Refresh() {
			progress("Recomputed audit after inventory changes")
		}
		return run(ctx, args, progress)
	}
}

// FormatAudit renders an audit result as plain text
func FormatAudit(result engine.AuditResult, governance int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Pattern: %s\nGovernance score: %d/100\n", result.Pattern, governance))
	if len(result.Vulnerabilities) == 0 {
		sb.WriteString("No unmitigated vulnerabilities.\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("%d unmitigated vulnerabilities:\n", len(result.Vulnerabilities)))
	for _, v := range result.Vulnerabilities {
		sb.WriteString(fmt.Sprintf("  [%s] %s %s\n", strings.ToUpper(string(v.Severity)), v.ID, v.Description))
	}
	return sb.String()
}

// FormatExposure renders the exposure paths of the inventory
func FormatExposure(tools []engine.Tool, connections []engine.Connection) string {
	paths := engine.TraceExposure(tools, connections)
	if len(paths) == 0 {
		return "No Shadow AI tool reaches a foundation model."
	}
	names := make(map[string]string, len(tools))
	for _, t := range tools {
		names[t.ID] = t.Name
	}
	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = p.Story(names)
	}
	return strings.Join(lines, "\n")
}

// NewStoreRegistry registers every action over s
func NewStoreRegistry(s *store.Store) *Registry {
	r := NewRegistry()
	for _, group := range [][]Action{InventoryActions(s), AssessmentActions(s), AnalysisActions(s)} {
		for _, a := range group {
			r.Register(a)
		}
	}
	r.Register(&SaveSnapshotAction{Store: s})
	r.Register(&DiffSnapshotAction{Store: s})
	return r
}
