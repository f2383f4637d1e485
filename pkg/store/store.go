// Package store is the single-writer state container driving an assessment.
// Every command replaces its slice of state under one lock and queries hand
// out copies, so readers never observe a partial update.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/google/uuid"

	"github.com/user/govaudit/pkg/auditlog"
	"github.com/user/govaudit/pkg/engine"
	"github.com/user/govaudit/pkg/guard"
	"github.com/user/govaudit/pkg/roadmap"
	"github.com/user/govaudit/pkg/taxonomy"
)

var (
	// ErrDuplicateTool is returned when a tool id is already in the inventory
	ErrDuplicateTool = errors.New("tool already exists")
	// ErrUnknownLayer is returned when a tool references a layer outside the taxonomy
	ErrUnknownLayer = errors.New("unknown layer")
	// ErrUnknownTool is returned when a command references a missing tool
	ErrUnknownTool = errors.New("unknown tool")
)

// ShadowAIPrefix starts the risk log entry raised for every risky tool
const ShadowAIPrefix = "Shadow AI Tool Detected: "

// Company is the profile of the organisation under assessment
type Company struct {
	Name     string `json:"name" yaml:"name"`
	Industry string `json:"industry" yaml:"industry"`
	Size     string `json:"size" yaml:"size"`
	Region   string `json:"region" yaml:"region"`
}

// MaturityInput is the raw input of SetMaturityScores
type MaturityInput struct {
	Literacy   float64
	Governance float64
	Adoption   *float64
}

// Snapshot is a consistent, fully copied view of the store
type Snapshot struct {
	Company         Company               `json:"company" yaml:"company"`
	Tools           []engine.Tool         `json:"tools" yaml:"tools"`
	Connections     []engine.Connection   `json:"connections" yaml:"connections"`
	RiskLog         []engine.Risk         `json:"riskLog" yaml:"risk_log"`
	Audit           engine.AuditResult    `json:"audit" yaml:"audit"`
	GovernanceScore int                   `json:"governanceScore" yaml:"governance_score"`
	AdoptionScore   int                   `json:"adoptionScore" yaml:"adoption_score"`
	FrictionCost    float64               `json:"frictionCost" yaml:"friction_cost"`
	CostBasis       engine.CostBasis      `json:"costBasis" yaml:"cost_basis"`
	Maturity        engine.MaturityScores `json:"maturity" yaml:"maturity"`
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the structured logger
func WithLogger(logger log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithGuard sets the personal data guard applied to reported risks
func WithGuard(g guard.Guard) Option {
	return func(s *Store) { s.guard = g }
}

// WithRecorder sets the audit trail recorder
func WithRecorder(r auditlog.Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// WithClock sets the time source used for audit events
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the id source for risks reported without an id
func WithIDGenerator(next func() string) Option {
	return func(s *Store) { s.nextID = next }
}

// WithCostBasis overrides the initial cost basis
func WithCostBasis(c engine.CostBasis) Option {
	return func(s *Store) { s.costBasis = c.Normalize() }
}

// Store owns all mutable assessment state
type Store struct {
	mu sync.Mutex

	tax      *taxonomy.Taxonomy
	detector *engine.Detector
	logger   log.Logger
	guard    guard.Guard
	recorder auditlog.Recorder
	now      func() time.Time
	nextID   func() string

	company    Company
	inventory  engine.Inventory
	riskLog    engine.RiskLog
	ledger     *engine.Ledger
	audit      engine.AuditResult
	governance int
	adoption   int
	costBasis  engine.CostBasis
	maturity   engine.MaturityScores

	auditedFingerprint string
	audited            bool
}

// New creates a store over the taxonomy. Defaults: no-op logger, pattern
// guard, discarded audit events, default cost basis.
func New(tax *taxonomy.Taxonomy, opts ...Option) *Store {
	s := &Store{
		tax:        tax,
		detector:   engine.NewDetector(tax),
		logger:     log.NewNopLogger(),
		guard:      guard.NewPatternGuard(),
		recorder:   auditlog.Discard{},
		now:        time.Now,
		nextID:     uuid.NewString,
		ledger:     engine.NewLedger(nil),
		audit:      engine.AuditResult{Vulnerabilities: []engine.Risk{}, Mitigations: []engine.Mitigation{}, Pattern: engine.PatternSingleAgent},
		governance: engine.MaxScore,
		adoption:   engine.DefaultAdoptionScore,
		costBasis:  engine.DefaultCostBasis(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "store")
	return s
}

func (s *Store) record(action, subject, detail string) {
	s.recorder.Record(auditlog.NewEvent(s.now(), action, subject, detail))
}

// ---- queries ----

// Taxonomy returns the shared read-only taxonomy
func (s *Store) Taxonomy() *taxonomy.Taxonomy {
	return s.tax
}

// MitigationLibrary returns the immutable mitigation templates
func (s *Store) MitigationLibrary() []taxonomy.MitigationTemplate {
	return s.tax.Mitigations()
}

// Tools returns the inventory
func (s *Store) Tools() []engine.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.Tools()
}

// Connections returns the declared integrations
func (s *Store) Connections() []engine.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.Connections()
}

// RiskLog returns the ad-hoc risk log
func (s *Store) RiskLog() []engine.Risk {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.riskLog.Entries()
}

// Mitigations returns the ledger
func (s *Store) Mitigations() []engine.Mitigation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

// AuditResult returns the result of the latest audit pass
func (s *Store) AuditResult() engine.AuditResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audit.Clone()
}

// GovernanceScore returns the current governance score
func (s *Store) GovernanceScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.governance
}

// AdoptionScore returns the adoption/ROI score
func (s *Store) AdoptionScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adoption
}

// FrictionCost is recomputed from the risk log and cost basis on every call
func (s *Store) FrictionCost() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.FrictionCost(s.riskLog.Len(), s.costBasis)
}

// CostBasis returns the cost basis
func (s *Store) CostBasis() engine.CostBasis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.costBasis
}

// MaturityScores returns the maturity scores
func (s *Store) MaturityScores() engine.MaturityScores {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maturity.Clone()
}

// Company returns the company profile
func (s *Store) Company() Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.company
}

// Snapshot returns a consistent copy of the whole state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Company:         s.company,
		Tools:           s.inventory.Tools(),
		Connections:     s.inventory.Connections(),
		RiskLog:         s.riskLog.Entries(),
		Audit:           s.audit.Clone(),
		GovernanceScore: s.governance,
		AdoptionScore:   s.adoption,
		FrictionCost:    engine.FrictionCost(s.riskLog.Len(), s.costBasis),
		CostBasis:       s.costBasis,
		Maturity:        s.maturity.Clone(),
	}
}

// Roadmap plans remediation from the latest scores and audit result
func (s *Store) Roadmap() []roadmap.Phase {
	snap := s.Snapshot()
	return roadmap.Plan(snap.Maturity, snap.Audit, snap.RiskLog)
}

// ---- commands ----

// AddTool adds an asset to the inventory. A risky tool immediately logs a
// Shadow AI risk and costs RiskyToolPenalty governance points until the next
// audit pass recomputes the score.
func (s *Store) AddTool(t engine.Tool) error {
	if _, ok := s.tax.Layer(t.Layer); !ok {
		return fmt.Errorf("tool %s: %w %d", t.ID, ErrUnknownLayer, t.Layer)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inventory.AddTool(t) {
		return fmt.Errorf("tool %s: %w", t.ID, ErrDuplicateTool)
	}
	s.logger.Debug("tool added", "tool", t.ID, "layer", t.Layer, "risky", t.Risky)
	s.record("add_tool", t.ID, t.Name)

	if t.Risky {
		s.reportRiskLocked(engine.Risk{
			Severity:    engine.SeverityHigh,
			Category:    "Shadow AI",
			Description: ShadowAIPrefix + t.Name,
			Origin:      engine.OriginInventory,
			Layer:       &t.Layer,
		})
		s.governance = engine.ClampScore(s.governance - engine.RiskyToolPenalty)
		s.logger.Info("risky tool penalised", "tool", t.ID, "governance_score", s.governance)
	}
	return nil
}

// RemoveTool deletes a tool and its connections
func (s *Store) RemoveTool(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inventory.RemoveTool(id) {
		return fmt.Errorf("tool %s: %w", id, ErrUnknownTool)
	}
	s.logger.Debug("tool removed", "tool", id)
	s.record("remove_tool", id, "")
	return nil
}

// MoveTool updates a tool's canvas position
func (s *Store) MoveTool(id string, pos engine.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inventory.MoveTool(id, pos) {
		return fmt.Errorf("tool %s: %w", id, ErrUnknownTool)
	}
	return nil
}

// AddConnection links two tools. Duplicates and self links are ignored.
func (s *Store) AddConnection(a, b string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range []string{a, b} {
		if _, ok := s.inventory.Tool(id); !ok {
			return fmt.Errorf("tool %s: %w", id, ErrUnknownTool)
		}
	}
	if s.inventory.AddConnection(a, b) {
		s.logger.Debug("connection added", "a", a, "b", b)
		s.record("add_connection", engine.Connection{A: a, B: b}.Key(), "")
	}
	return nil
}

// RemoveConnection unlinks two tools; a missing pair is ignored
func (s *Store) RemoveConnection(a, b string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inventory.RemoveConnection(a, b) {
		s.record("remove_connection", engine.Connection{A: a, B: b}.Key(), "")
	}
}

// ReportRisk appends a risk to the ad-hoc log after redacting personal data.
// Entries raised by the inventory itself are logged verbatim.
// It reports false when an entry with the same description already exists.
func (s *Store) ReportRisk(r engine.Risk) bool {
	if found := s.guard.Scan(r.Description); len(found) > 0 {
		kinds := make([]string, len(found))
		for i, m := range found {
			kinds[i] = m.Kind
		}
		r.Description = s.guard.Redact(r.Description)
		s.logger.Info("personal data redacted from reported risk", "kinds", strings.Join(kinds, ","))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reportRiskLocked(r)
}

func (s *Store) reportRiskLocked(r engine.Risk) bool {
	r.Description = strings.TrimSpace(r.Description)
	if r.ID == "" {
		r.ID = s.nextID()
	}
	if r.Origin == "" {
		r.Origin = engine.OriginManual
	}
	if !s.riskLog.Add(r) {
		return false
	}
	s.record("report_risk", r.ID, r.Description)
	return true
}

// UpdateCostBasis merges a partial cost basis; non-positive values fall back to defaults
func (s *Store) UpdateCostBasis(p engine.CostBasisPatch) engine.CostBasis {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.costBasis = p.Apply(s.costBasis)
	s.record("update_cost_basis", "", fmt.Sprintf("%+v", s.costBasis))
	return s.costBasis
}

// SetMaturityScores stores clamped maturity scores and their overall mean
func (s *Store) SetMaturityScores(in MaturityInput) engine.MaturityScores {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maturity = engine.NewMaturityScores(in.Literacy, in.Governance, in.Adoption)
	s.record("set_maturity_scores", "", fmt.Sprintf("overall=%.2f", s.maturity.Overall))
	return s.maturity.Clone()
}

// SetAdoptionScore sets the adoption/ROI score, clamped to [0, 100]
func (s *Store) SetAdoptionScore(v int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.adoption = engine.ClampScore(v)
	s.record("set_adoption_score", "", fmt.Sprint(s.adoption))
	return s.adoption
}

// SetCompany replaces the company profile
func (s *Store) SetCompany(c Company) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.company = c
	s.record("set_company", c.Name, "")
}

// ToggleMitigation flips a mitigation's status. The vulnerability set is not
// recomputed until the next audit pass.
func (s *Store) ToggleMitigation(id string) (engine.MitigationStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.ledger.Toggle(id)
	if ok {
		s.logger.Debug("mitigation toggled", "mitigation", id, "status", status)
		s.record("toggle_mitigation", id, string(status))
	}
	return status, ok
}

// Fingerprint summarises the inputs that trigger a recompute
func (s *Store) Fingerprint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fingerprintLocked()
}

func (s *Store) fingerprintLocked() string {
	return fmt.Sprintf("%d|%d|%s", s.inventory.ToolCount(), s.inventory.ConnectionCount(), s.ledger.Fingerprint())
}

// RunAudit recomputes the vulnerability set and the authoritative
// governance score
func (s *Store) RunAudit() engine.AuditResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runAuditLocked()
}

// Refresh runs an audit pass only when the fingerprint changed since the
// last one. Mutations made in between are coalesced into a single pass.
func (s *Store) Refresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.audited && s.fingerprintLocked() == s.auditedFingerprint {
		return false
	}
	s.runAuditLocked()
	return true
}

func (s *Store) runAuditLocked() engine.AuditResult {
	result := s.detector.RunAudit(s.inventory.Tools(), s.inventory.Connections(), s.ledger.Snapshot())

	s.ledger = engine.NewLedger(result.Mitigations)
	s.audit = result
	s.governance = engine.GovernanceScore(result.Vulnerabilities)
	s.auditedFingerprint = s.fingerprintLocked()
	s.audited = true

	s.logger.Info("audit completed",
		"vulnerabilities", len(result.Vulnerabilities),
		"governance_score", s.governance,
		"pattern", result.Pattern,
	)
	s.record("run_audit", "", fmt.Sprintf("%d vulnerabilities", len(result.Vulnerabilities)))
	return result.Clone()
}
