package engine

import "strings"

// Severity is the normalized severity of a risk
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities from low (1) to critical (4). Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// ParseSeverity maps free text to a severity, defaulting to medium
func ParseSeverity(s string) Severity {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if sev.Rank() == 0 {
		return SeverityMedium
	}
	return sev
}

// Origins of a risk
const (
	OriginDetection  = "risk-engine"
	OriginInventory  = "inventory"
	OriginOnboarding = "onboarding"
	OriginManual     = "manual"
)

// Risk is a single finding, either derived by an audit pass or reported into the risk log
type Risk struct {
	ID          string   `json:"id" yaml:"id"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Category    string   `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Origin      string   `json:"origin" yaml:"origin"`
	Layer       *int     `json:"layer,omitempty" yaml:"layer,omitempty"`
}

// LayerID returns the layer the risk is attached to, or 0
func (r Risk) LayerID() int {
	if r.Layer == nil {
		return 0
	}
	return *r.Layer
}

func (r Risk) clone() Risk {
	if r.Layer != nil {
		l := *r.Layer
		r.Layer = &l
	}
	return r
}

func cloneRisks(in []Risk) []Risk {
	if in == nil {
		return nil
	}
	out := make([]Risk, len(in))
	for i, r := range in {
		out[i] = r.clone()
	}
	return out
}

// CountBySeverity counts risks at exactly the given severity
func CountBySeverity(risks []Risk, sev Severity) int {
	n := 0
	for _, r := range risks {
		if r.Severity == sev {
			n++
		}
	}
	return n
}
