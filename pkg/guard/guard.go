// Package guard detects and redacts personal data in free text before it is
// stored in a risk log or report.
package guard

import (
	"regexp"
	"strings"
)

// Kinds of personal data the pattern guard recognises
const (
	KindEmail      = "email"
	KindPhone      = "phone"
	KindSSN        = "ssn"
	KindCreditCard = "credit_card"
	KindIPAddress  = "ip_address"
)

// Match is one piece of personal data found in a text
type Match struct {
	Kind  string
	Value string
}

// Guard scans and redacts personal data
type Guard interface {
	Scan(text string) []Match
	Redact(text string) string
}

type pattern struct {
	kind string
	re   *regexp.Regexp
}

// PatternGuard is a Guard backed by regular expressions
type PatternGuard struct {
	patterns []pattern
}

// NewPatternGuard returns a guard for emails, phone numbers, US social
// security numbers, card numbers and IPv4 addresses. Card numbers are
// redacted before the shorter digit patterns run.
func NewPatternGuard() *PatternGuard {
	return &PatternGuard{patterns: []pattern{
		{KindEmail, regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)},
		{KindCreditCard, regexp.MustCompile(`\b\d(?:[ \-]?\d){12,15}\b`)},
		{KindSSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
		{KindIPAddress, regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
		{KindPhone, regexp.MustCompile(`(?:\+\d{1,3}[ .\-]?)?(?:\(\d{3}\)|\b\d{3})[ .\-]\d{3}[ .\-]\d{4}\b`)},
	}}
}

// Scan returns every match in pattern order
func (g *PatternGuard) Scan(text string) []Match {
	var matches []Match
	for _, p := range g.patterns {
		for _, v := range p.re.FindAllString(text, -1) {
			matches = append(matches, Match{Kind: p.kind, Value: v})
		}
	}
	return matches
}

// Redact replaces each match with a [REDACTED:<kind>] marker
func (g *PatternGuard) Redact(text string) string {
	for _, p := range g.patterns {
		text = p.re.ReplaceAllString(text, "[REDACTED:"+strings.ToUpper(p.kind)+"]")
	}
	return text
}

// Nop is a Guard that never finds anything
type Nop struct{}

// Scan finds nothing
func (Nop) Scan(string) []Match { return nil }

// Redact returns text unchanged
func (Nop) Redact(text string) string { return text }
