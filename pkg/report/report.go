// Package report projects an assessment snapshot into a flat summary record.
package report

import (
	"fmt"
	"time"

	"github.com/user/govaudit/pkg/engine"
	"github.com/user/govaudit/pkg/store"
	"github.com/user/govaudit/pkg/taxonomy"
)

// topMitigations is the number of mitigations listed in a summary
const topMitigations = 3

// StackEntry is one tool in the stack listing
type StackEntry struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Layer    string `json:"layer" yaml:"layer"`
}

// Summary is the flat report record
type Summary struct {
	Timestamp         time.Time              `json:"timestamp" yaml:"timestamp"`
	ExecutiveSummary  string                 `json:"executiveSummary" yaml:"executive_summary"`
	CompanyName       string                 `json:"companyName" yaml:"company_name"`
	Industry          string                 `json:"industry" yaml:"industry"`
	CompanySize       string                 `json:"companySize" yaml:"company_size"`
	Region            string                 `json:"region" yaml:"region"`
	Stack             []StackEntry           `json:"stack" yaml:"stack"`
	TopMitigations    []string               `json:"topMitigations" yaml:"top_mitigations"`
	GovernanceGap     string                 `json:"governanceGap" yaml:"governance_gap"`
	MaturityScores    *engine.MaturityScores `json:"maturityScores,omitempty" yaml:"maturity_scores,omitempty"`
	DiscoveryInsights []string               `json:"discoveryInsights" yaml:"discovery_insights"`
}

// Builder assembles summaries. It does no computation beyond string
// assembly and slicing.
type Builder struct {
	Taxonomy *taxonomy.Taxonomy
	Now      func() time.Time
}

// NewBuilder creates a builder using the wall clock
func NewBuilder(tax *taxonomy.Taxonomy) *Builder {
	return &Builder{Taxonomy: tax, Now: time.Now}
}

// Build projects snap into a Summary
func (b *Builder) Build(snap store.Snapshot) Summary {
	vulns := snap.Audit.Vulnerabilities
	critical := engine.CountBySeverity(vulns, engine.SeverityCritical)
	high := engine.CountBySeverity(vulns, engine.SeverityHigh)

	s := Summary{
		Timestamp:         b.Now(),
		ExecutiveSummary:  executiveSummary(snap, len(vulns), critical),
		CompanyName:       snap.Company.Name,
		Industry:          snap.Company.Industry,
		CompanySize:       snap.Company.Size,
		Region:            snap.Company.Region,
		Stack:             make([]StackEntry, 0, len(snap.Tools)),
		TopMitigations:    []string{},
		GovernanceGap:     governanceGap(snap.GovernanceScore, critical, high),
		DiscoveryInsights: make([]string, 0, len(snap.RiskLog)),
	}

	for _, t := range snap.Tools {
		layer := fmt.Sprintf("Layer %d", t.Layer)
		if l, ok := b.Taxonomy.Layer(t.Layer); ok {
			layer = fmt.Sprintf("L%d %s", l.ID, l.Name)
		}
		s.Stack = append(s.Stack, StackEntry{Name: t.Name, Category: t.Category, Layer: layer})
	}

	mitigations := snap.Audit.Mitigations
	if len(mitigations) > topMitigations {
		mitigations = mitigations[:topMitigations]
	}
	for _, m := range mitigations {
		s.TopMitigations = append(s.TopMitigations, m.Title)
	}

	if snap.Maturity.Overall != 0 {
		m := snap.Maturity.Clone()
		s.MaturityScores = &m
	}

	for _, r := range snap.RiskLog {
		s.DiscoveryInsights = append(s.DiscoveryInsights, r.Description)
	}
	return s
}

func executiveSummary(snap store.Snapshot, risks, critical int) string {
	company := snap.Company.Name
	if company == "" {
		company = "the organisation"
	}
	return fmt.Sprintf(
		"The governance audit of %s identified %d risks, %d of them critical, across %d declared tools. "+
			"Outstanding discovery findings carry an estimated friction cost of $%.2f per month.",
		company, risks, critical, len(snap.Tools), snap.FrictionCost,
	)
}

func governanceGap(score, critical, high int) string {
	if score >= engine.MaxScore {
		return "Governance health is 100/100: no unmitigated critical or high findings remain."
	}
	return fmt.Sprintf(
		"Governance health is %d/100, a gap of %d points driven by %d critical and %d high findings.",
		score, engine.MaxScore-score, critical, high,
	)
}
