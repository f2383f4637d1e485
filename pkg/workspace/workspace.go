// Package workspace loads a declared AI inventory from YAML and replays it
// into a store.
package workspace

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/govaudit/pkg/engine"
	"github.com/user/govaudit/pkg/store"
)

// ToolSpec declares one inventory asset
type ToolSpec struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Layer    int    `yaml:"layer"`
	Risky    bool   `yaml:"risky"`
}

// MaturitySpec holds the maturity axes, 0 to 4
type MaturitySpec struct {
	Literacy   float64  `yaml:"literacy"`
	Governance float64  `yaml:"governance"`
	Adoption   *float64 `yaml:"adoption"`
}

// CostBasisSpec is a partial cost basis; omitted keys keep the current value
type CostBasisSpec struct {
	HourlyRate                  *float64 `yaml:"hourly_rate"`
	EmployeeCount               *int     `yaml:"employee_count"`
	RemediationHoursPerIncident *float64 `yaml:"remediation_hours_per_incident"`
	IncidentsPerMonth           *float64 `yaml:"incidents_per_month"`
}

// Patch converts the present keys into a store update
func (c CostBasisSpec) Patch() engine.CostBasisPatch {
	return engine.CostBasisPatch{
		HourlyRate:                  c.HourlyRate,
		EmployeeCount:               c.EmployeeCount,
		RemediationHoursPerIncident: c.RemediationHoursPerIncident,
		IncidentsPerMonth:           c.IncidentsPerMonth,
	}
}

// Concern is a risk raised during onboarding
type Concern struct {
	Severity    string `yaml:"severity"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

// Workspace is the on-disk description of an assessment
type Workspace struct {
	Company     store.Company  `yaml:"company"`
	CostBasis   *CostBasisSpec `yaml:"cost_basis"`
	Tools       []ToolSpec     `yaml:"tools"`
	Connections [][2]string    `yaml:"connections"`
	Implemented []string       `yaml:"implemented_mitigations"`
	Maturity    *MaturitySpec  `yaml:"maturity"`
	Adoption    *int           `yaml:"adoption_score"`
	Concerns    []Concern      `yaml:"concerns"`
}

// Load reads and parses a workspace file
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace %s: %w", path, err)
	}
	ws, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ws, nil
}

// Parse decodes a workspace and checks that tool ids are present and unique
func Parse(data []byte) (*Workspace, error) {
	var ws Workspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for i, t := range ws.Tools {
		if t.ID == "" {
			return nil, fmt.Errorf("tool at position %d has no id", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate tool id %s", t.ID)
		}
		seen[t.ID] = true
	}
	return &ws, nil
}

// Apply replays the workspace into s and finishes with an audit pass.
// Implemented mitigations are toggled after the first pass seeds the ledger;
// with no findings there is no ledger and the list is ignored.
func (ws *Workspace) Apply(s *store.Store) error {
	s.SetCompany(ws.Company)
	if ws.CostBasis != nil {
		s.UpdateCostBasis(ws.CostBasis.Patch())
	}

	for _, t := range ws.Tools {
		name := t.Name
		if name == "" {
			name = t.ID
		}
		err := s.AddTool(engine.Tool{ID: t.ID, Name: name, Category: t.Category, Layer: t.Layer, Risky: t.Risky})
		if err != nil {
			return err
		}
	}
	for _, c := range ws.Connections {
		if err := s.AddConnection(c[0], c[1]); err != nil {
			return err
		}
	}

	for _, c := range ws.Concerns {
		s.ReportRisk(engine.Risk{
			Severity:    engine.ParseSeverity(c.Severity),
			Category:    c.Category,
			Description: c.Description,
			Origin:      engine.OriginOnboarding,
		})
	}

	if ws.Maturity != nil {
		s.SetMaturityScores(store.MaturityInput{
			Literacy:   ws.Maturity.Literacy,
			Governance: ws.Maturity.Governance,
			Adoption:   ws.Maturity.Adoption,
		})
	}
	if ws.Adoption != nil {
		s.SetAdoptionScore(*ws.Adoption)
	}

	s.RunAudit()
	if len(ws.Implemented) == 0 || len(s.Mitigations()) == 0 {
		return nil
	}
	for _, id := range ws.Implemented {
		status, ok := s.ToggleMitigation(id)
		if !ok {
			return fmt.Errorf("unknown mitigation %s", id)
		}
		if status != engine.StatusImplemented {
			return fmt.Errorf("mitigation %s listed twice", id)
		}
	}
	s.RunAudit()
	return nil
}
