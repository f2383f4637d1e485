package engine

import (
	"strings"

	"github.com/user/govaudit/pkg/taxonomy"
)

// MitigationStatus is either proposed or implemented
type MitigationStatus string

const (
	StatusProposed    MitigationStatus = "proposed"
	StatusImplemented MitigationStatus = "implemented"
)

// Mitigation is a mutable copy of a library template carrying its status
type Mitigation struct {
	ID          string           `json:"id" yaml:"id"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description" yaml:"description"`
	Evidence    string           `json:"evidence" yaml:"evidence"`
	Layers      []int            `json:"layers" yaml:"layers"`
	Status      MitigationStatus `json:"status" yaml:"status"`
}

// Covers reports whether the mitigation lists layer in its relevance set
func (m Mitigation) Covers(layer int) bool {
	for _, l := range m.Layers {
		if l == layer {
			return true
		}
	}
	return false
}

func (m Mitigation) clone() Mitigation {
	m.Layers = append([]int(nil), m.Layers...)
	return m
}

// FromTemplate creates a proposed mitigation from a library template
func FromTemplate(t taxonomy.MitigationTemplate) Mitigation {
	return Mitigation{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Evidence:    t.Evidence,
		Layers:      append([]int(nil), t.Layers...),
		Status:      StatusProposed,
	}
}

// Ledger tracks the status of each mitigation. Statuses survive audit passes.
type Ledger struct {
	items []Mitigation
}

// NewLedger builds a ledger from existing mitigations
func NewLedger(items []Mitigation) *Ledger {
	l := &Ledger{}
	for _, m := range items {
		l.items = append(l.items, m.clone())
	}
	return l
}

// Len returns the number of mitigations in the ledger
func (l *Ledger) Len() int {
	return len(l.items)
}

// Seed fills an empty ledger with the library as proposed mitigations.
// A non-empty ledger is left untouched.
func (l *Ledger) Seed(library []taxonomy.MitigationTemplate) bool {
	if len(l.items) > 0 {
		return false
	}
	for _, t := range library {
		l.items = append(l.items, FromTemplate(t))
	}
	return len(library) > 0
}

// Toggle flips a mitigation between proposed and implemented
func (l *Ledger) Toggle(id string) (MitigationStatus, bool) {
	for i := range l.items {
		if l.items[i].ID != id {
			continue
		}
		if l.items[i].Status == StatusImplemented {
			l.items[i].Status = StatusProposed
		} else {
			l.items[i].Status = StatusImplemented
		}
		return l.items[i].Status, true
	}
	return "", false
}

// Implemented reports whether any implemented mitigation covers layer
func (l *Ledger) Implemented(layer int) bool {
	for _, m := range l.items {
		if m.Status == StatusImplemented && m.Covers(layer) {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the ledger entries
func (l *Ledger) Snapshot() []Mitigation {
	out := make([]Mitigation, len(l.items))
	for i, m := range l.items {
		out[i] = m.clone()
	}
	return out
}

// Fingerprint summarises every id and status in ledger order
func (l *Ledger) Fingerprint() string {
	parts := make([]string, len(l.items))
	for i, m := range l.items {
		parts[i] = m.ID + "=" + string(m.Status)
	}
	return strings.Join(parts, ",")
}
