package engine

import (
	"fmt"

	"github.com/user/govaudit/pkg/taxonomy"
)

// InteractionPattern labels how connected the inventory is
type InteractionPattern string

const (
	PatternSingleAgent InteractionPattern = "Single-Agent"
	PatternMultiAgent  InteractionPattern = "Multi-Agent"
)

// multiAgentThreshold is the connection count above which the inventory is multi-agent
const multiAgentThreshold = 5

// Rule flags tools on a layer as exposed to a threat
type Rule struct {
	Layer     int
	ThreatID  string
	Severity  Severity
	RiskyOnly bool
}

// Applies reports whether the rule fires for the tool
func (r Rule) Applies(t Tool) bool {
	if t.Layer != r.Layer {
		return false
	}
	return !r.RiskyOnly || t.Risky
}

// DefaultRules is the detection rule table, at most one rule per layer
var DefaultRules = []Rule{
	{Layer: 1, ThreatID: "T1.1", Severity: SeverityCritical},
	{Layer: 2, ThreatID: "T2.1", Severity: SeverityHigh, RiskyOnly: true},
	{Layer: 3, ThreatID: "T3.1", Severity: SeverityHigh, RiskyOnly: true},
	{Layer: 7, ThreatID: "T7.1", Severity: SeverityMedium, RiskyOnly: true},
}

// AuditResult is the outcome of one audit pass
type AuditResult struct {
	Vulnerabilities []Risk             `json:"vulnerabilities" yaml:"vulnerabilities"`
	Mitigations     []Mitigation       `json:"mitigations" yaml:"mitigations"`
	Pattern         InteractionPattern `json:"pattern" yaml:"pattern"`
}

// Clone returns a deep copy of the result
func (a AuditResult) Clone() AuditResult {
	out := AuditResult{
		Vulnerabilities: cloneRisks(a.Vulnerabilities),
		Pattern:         a.Pattern,
	}
	if a.Mitigations != nil {
		out.Mitigations = make([]Mitigation, len(a.Mitigations))
		for i, m := range a.Mitigations {
			out.Mitigations[i] = m.clone()
		}
	}
	return out
}

// VulnerabilityID is the stable id of the vulnerability raised for a tool on a layer
func VulnerabilityID(layer int, toolID string) string {
	return fmt.Sprintf("V-L%d-%s", layer, toolID)
}

// DetectPattern labels the inventory by its connection count
func DetectPattern(connectionCount int) InteractionPattern {
	if connectionCount > multiAgentThreshold {
		return PatternMultiAgent
	}
	return PatternSingleAgent
}

// Detector runs audit passes against a taxonomy and rule table
type Detector struct {
	Taxonomy *taxonomy.Taxonomy
	Rules    []Rule
}

// NewDetector creates a detector using DefaultRules
func NewDetector(tax *taxonomy.Taxonomy) *Detector {
	return &Detector{Taxonomy: tax, Rules: DefaultRules}
}

// RunAudit derives the full vulnerability set from the inventory and the
// current mitigations. The set is rebuilt from scratch on every call. When
// findings exist and no mitigations are tracked yet, the returned result
// carries the whole library as proposed mitigations.
func (d *Detector) RunAudit(tools []Tool, connections []Connection, mitigations []Mitigation) AuditResult {
	vulns := make([]Risk, 0)
	ledger := NewLedger(mitigations)

	for _, tool := range tools {
		for _, rule := range d.Rules {
			if !rule.Applies(tool) {
				continue
			}
			if ledger.Implemented(rule.Layer) {
				continue
			}
			vulns = append(vulns, d.vulnerability(rule, tool))
			break
		}
	}

	if len(vulns) > 0 && ledger.Len() == 0 {
		ledger.Seed(d.Taxonomy.Mitigations())
	}

	return AuditResult{
		Vulnerabilities: vulns,
		Mitigations:     ledger.Snapshot(),
		Pattern:         DetectPattern(len(connections)),
	}
}

func (d *Detector) vulnerability(rule Rule, tool Tool) Risk {
	layer := rule.Layer
	category := rule.ThreatID
	layerName := fmt.Sprintf("Layer %d", layer)

	if th, ok := d.Taxonomy.Threat(rule.ThreatID); ok {
		category = th.Title
	}
	if l, ok := d.Taxonomy.Layer(layer); ok {
		layerName = l.Name
	}

	return Risk{
		ID:          VulnerabilityID(layer, tool.ID),
		Severity:    rule.Severity,
		Category:    category,
		Description: fmt.Sprintf("%s exposes %s to %s", tool.Name, layerName, category),
		Origin:      OriginDetection,
		Layer:       &layer,
	}
}
