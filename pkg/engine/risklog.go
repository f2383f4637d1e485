package engine

// RiskLog is the ad-hoc risk log: append-only, deduplicated by description.
// It is never touched by an audit pass.
type RiskLog struct {
	entries []Risk
}

// Add appends r unless a risk with the same description is already logged.
// It reports whether the entry was added.
func (l *RiskLog) Add(r Risk) bool {
	if r.Severity.Rank() == 0 {
		r.Severity = SeverityMedium
	}
	for _, existing := range l.entries {
		if existing.Description == r.Description {
			return false
		}
	}
	l.entries = append(l.entries, r.clone())
	return true
}

// Len returns the number of logged risks
func (l *RiskLog) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log in insertion order
func (l *RiskLog) Entries() []Risk {
	out := cloneRisks(l.entries)
	if out == nil {
		return []Risk{}
	}
	return out
}
