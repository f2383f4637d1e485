// Package roadmap turns maturity scores and audit results into a phased
// remediation plan with templated deliverables.
package roadmap

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/user/govaudit/pkg/engine"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("deliverables").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// Axis is a maturity axis a phase can target
type Axis string

const (
	AxisLiteracy   Axis = "literacy"
	AxisGovernance Axis = "governance"
)

// Priority of a roadmap item
type Priority string

const (
	PriorityCritical  Priority = "critical"
	PriorityStandard  Priority = "standard"
	PriorityRecurring Priority = "recurring"
)

// DeliverableType tags the kind of document an item produces
type DeliverableType string

const (
	TypePolicy     DeliverableType = "policy"
	TypeTraining   DeliverableType = "training"
	TypeRunbook    DeliverableType = "runbook"
	TypeAssessment DeliverableType = "assessment"
	TypeReview     DeliverableType = "review"
)

// Phase names
const (
	LiteracyPhaseName   = "AI Literacy Uplift"
	GovernancePhaseName = "Governance Framework Build-Out"
	HardeningPhaseName  = "Technical Hardening"
	SustainedPhaseName  = "Sustained Excellence"
)

// Thresholds on a 0-4 axis
const (
	criticalThreshold = 2.0
	standardThreshold = 3.0
)

// Deliverable is a document produced by a roadmap item
type Deliverable struct {
	Title   string          `json:"title" yaml:"title"`
	Type    DeliverableType `json:"type" yaml:"type"`
	Content string          `json:"content" yaml:"content"`
}

// Item is a unit of remediation work
type Item struct {
	Title       string      `json:"title" yaml:"title"`
	Priority    Priority    `json:"priority" yaml:"priority"`
	Deliverable Deliverable `json:"deliverable" yaml:"deliverable"`
}

// Phase is an ordered bundle of items
type Phase struct {
	Title string `json:"title" yaml:"title"`
	Name  string `json:"name" yaml:"name"`
	Items []Item `json:"items" yaml:"items"`
}

// templateData is interpolated into every deliverable template
type templateData struct {
	Scores             engine.MaturityScores
	LiteracyGap        float64
	GovernanceGap      float64
	VulnerabilityCount int
	CriticalCount      int
	Vulnerabilities    []engine.Risk
	RiskLog            []engine.Risk
	Pattern            engine.InteractionPattern
	Mitigation         engine.Mitigation
}

// PriorityAxis returns the axis with the larger gap to full maturity. Ties
// favour governance.
func PriorityAxis(scores engine.MaturityScores) Axis {
	literacyGap := engine.MaxMaturity - scores.Literacy
	governanceGap := engine.MaxMaturity - scores.Governance
	if literacyGap > governanceGap {
		return AxisLiteracy
	}
	return AxisGovernance
}

// Plan builds the roadmap. It is a pure function of its inputs.
func Plan(scores engine.MaturityScores, result engine.AuditResult, riskLog []engine.Risk) []Phase {
	data := templateData{
		Scores:             scores,
		LiteracyGap:        engine.MaxMaturity - scores.Literacy,
		GovernanceGap:      engine.MaxMaturity - scores.Governance,
		VulnerabilityCount: len(result.Vulnerabilities),
		CriticalCount:      engine.CountBySeverity(result.Vulnerabilities, engine.SeverityCritical),
		Vulnerabilities:    result.Vulnerabilities,
		RiskLog:            riskLog,
		Pattern:            result.Pattern,
	}

	literacy := Phase{Name: LiteracyPhaseName, Items: literacyItems(data)}
	governance := Phase{Name: GovernancePhaseName, Items: governanceItems(data)}
	hardening := Phase{Name: HardeningPhaseName, Items: hardeningItems(data, result.Mitigations)}
	sustained := Phase{Name: SustainedPhaseName, Items: []Item{{
		Title:       "Quarterly AI Governance Review",
		Priority:    PriorityRecurring,
		Deliverable: deliverable("Quarterly Review Agenda", TypeReview, "review.tmpl", data),
	}}}

	primary, secondary := governance, literacy
	if PriorityAxis(scores) == AxisLiteracy {
		primary, secondary = literacy, governance
	}

	var phases []Phase
	for _, p := range []Phase{primary, hardening, secondary} {
		if len(p.Items) > 0 {
			phases = append(phases, p)
		}
	}
	phases = append(phases, sustained)

	for i := range phases {
		phases[i].Title = fmt.Sprintf("Phase %d: %s", i+1, phases[i].Name)
	}
	return phases
}

func literacyItems(data templateData) []Item {
	var items []Item
	if data.Scores.Literacy < criticalThreshold {
		items = append(items, Item{
			Title:       "Launch a Foundational AI Literacy Program",
			Priority:    PriorityCritical,
			Deliverable: deliverable("AI Literacy Curriculum", TypeTraining, "literacy_critical.tmpl", data),
		})
	}
	if data.Scores.Literacy < standardThreshold {
		items = append(items, Item{
			Title:       "Run Role-Based AI Enablement Workshops",
			Priority:    PriorityStandard,
			Deliverable: deliverable("Enablement Workshop Plan", TypeTraining, "literacy_standard.tmpl", data),
		})
	}
	return items
}

func governanceItems(data templateData) []Item {
	var items []Item
	if data.Scores.Governance < criticalThreshold {
		items = append(items, Item{
			Title:       "Adopt an AI Acceptable Use Policy",
			Priority:    PriorityCritical,
			Deliverable: deliverable("AI Acceptable Use Policy", TypePolicy, "governance_critical.tmpl", data),
		})
	}
	if data.Scores.Governance < standardThreshold {
		items = append(items, Item{
			Title:       "Stand Up an AI Governance Committee",
			Priority:    PriorityStandard,
			Deliverable: deliverable("Governance Committee Charter", TypePolicy, "governance_standard.tmpl", data),
		})
	}
	if len(data.RiskLog) > 0 {
		items = append(items, Item{
			Title:       fmt.Sprintf("Remediate %d Discovery Findings", len(data.RiskLog)),
			Priority:    PriorityCritical,
			Deliverable: deliverable("Discovery Findings Remediation Log", TypeRunbook, "findings.tmpl", data),
		})
	}
	return items
}

func hardeningItems(data templateData, mitigations []engine.Mitigation) []Item {
	var items []Item
	if data.VulnerabilityCount > 0 {
		items = append(items, Item{
			Title:       fmt.Sprintf("Patch %d Unmitigated Vulnerabilities", data.VulnerabilityCount),
			Priority:    PriorityCritical,
			Deliverable: deliverable("Vulnerability Patch Plan", TypeRunbook, "patch.tmpl", data),
		})
	}
	for _, m := range mitigations {
		d := data
		d.Mitigation = m

		title, priority := "Implement "+m.Title, PriorityStandard
		if m.Status == engine.StatusImplemented {
			title, priority = "Maintain "+m.Title, PriorityRecurring
		}
		items = append(items, Item{
			Title:       title,
			Priority:    priority,
			Deliverable: deliverable(m.Title+" Evidence Pack", TypeAssessment, "mitigation.tmpl", d),
		})
	}
	return items
}

func deliverable(title string, typ DeliverableType, tmpl string, data templateData) Deliverable {
	return Deliverable{Title: title, Type: typ, Content: render(tmpl, data)}
}

func render(name string, data templateData) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Sprintf("failed to execute template %s: %v", name, err)
	}
	return buf.String()
}

// Markdown renders the whole roadmap as one markdown document
func Markdown(phases []Phase) string {
	var buf bytes.Buffer
	buf.WriteString("# Remediation Roadmap\n\n")
	for _, p := range phases {
		buf.WriteString(fmt.Sprintf("## %s\n\n", p.Title))
		for _, it := range p.Items {
			buf.WriteString(fmt.Sprintf("- **%s** (%s) -> _%s_ [%s]\n", it.Title, it.Priority, it.Deliverable.Title, it.Deliverable.Type))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
