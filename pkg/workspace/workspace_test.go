package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/govaudit/pkg/engine"
	"github.com/user/govaudit/pkg/store"
	"github.com/user/govaudit/pkg/taxonomy"
)

const sample = `
company:
  name: Acme
  industry: Legal
cost_basis:
  hourly_rate: 100
  incidents_per_month: 2
  remediation_hours_per_incident: 3
tools:
  - id: gpt
    name: GPT-4
    category: Foundation Model
    layer: 1
  - id: otter
    name: Otter
    layer: 7
    risky: true
connections:
  - [gpt, otter]
maturity:
  literacy: 1
  governance: 3
adoption_score: 70
concerns:
  - severity: high
    category: Data Leakage
    description: Staff paste contracts into chatbots
`

func TestParse(t *testing.T) {
	ws, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Equal(t, "Acme", ws.Company.Name)
	require.Len(t, ws.Tools, 2)
	require.Equal(t, [][2]string{{"gpt", "otter"}}, ws.Connections)
	require.NotNil(t, ws.Adoption)
	require.Equal(t, 70, *ws.Adoption)
}

func TestParseRejectsBadTools(t *testing.T) {
	_, err := Parse([]byte("tools:\n  - name: nameless\n    layer: 1\n"))
	require.Error(t, err)

	_, err = Parse([]byte("tools:\n  - id: a\n    layer: 1\n  - id: a\n    layer: 2\n"))
	require.ErrorContains(t, err, "duplicate tool id a")
}

func TestApply(t *testing.T) {
	ws, err := Parse([]byte(sample))
	require.NoError(t, err)

	s := store.New(taxonomy.Default())
	require.NoError(t, ws.Apply(s))

	snap := s.Snapshot()
	require.Equal(t, "Acme", snap.Company.Name)
	require.Len(t, snap.Tools, 2)
	require.Len(t, snap.Connections, 1)
	require.Len(t, snap.Audit.Vulnerabilities, 2)
	require.Equal(t, 80, snap.GovernanceScore)
	require.Equal(t, 70, snap.AdoptionScore)
	require.Equal(t, 1.0, snap.Maturity.Literacy)

	// shadow AI entry plus the onboarding concern
	require.Len(t, snap.RiskLog, 2)
	require.Equal(t, engine.OriginOnboarding, snap.RiskLog[1].Origin)
	require.Equal(t, engine.SeverityHigh, snap.RiskLog[1].Severity)
	require.Equal(t, 2*2*3*100.0, snap.FrictionCost)
}

func TestApplyImplementedMitigations(t *testing.T) {
	ws, err := Parse([]byte(sample))
	require.NoError(t, err)
	ws.Implemented = []string{"M-01"}

	s := store.New(taxonomy.Default())
	require.NoError(t, ws.Apply(s))

	vulns := s.AuditResult().Vulnerabilities
	require.Len(t, vulns, 1)
	require.Equal(t, engine.VulnerabilityID(7, "otter"), vulns[0].ID)
	require.Equal(t, 100, s.GovernanceScore())
}

func TestApplyUnknownMitigation(t *testing.T) {
	ws, err := Parse([]byte(sample))
	require.NoError(t, err)
	ws.Implemented = []string{"M-99"}

	require.ErrorContains(t, ws.Apply(store.New(taxonomy.Default())), "unknown mitigation M-99")
}

func TestApplyUnknownLayer(t *testing.T) {
	ws, err := Parse([]byte("tools:\n  - id: x\n    layer: 9\n"))
	require.NoError(t, err)
	require.ErrorIs(t, ws.Apply(store.New(taxonomy.Default())), store.ErrUnknownLayer)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0600))

	ws, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Legal", ws.Company.Industry)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApplyPartialCostBasisKeepsCurrentValues(t *testing.T) {
	ws, err := Parse([]byte("cost_basis:\n  hourly_rate: 100\n"))
	require.NoError(t, err)

	s := store.New(taxonomy.Default(), store.WithCostBasis(engine.CostBasis{
		HourlyRate:                  200,
		EmployeeCount:               10,
		RemediationHoursPerIncident: 8,
		IncidentsPerMonth:           10,
	}))
	require.NoError(t, ws.Apply(s))

	require.Equal(t, engine.CostBasis{
		HourlyRate:                  100,
		EmployeeCount:               10,
		RemediationHoursPerIncident: 8,
		IncidentsPerMonth:           10,
	}, s.CostBasis())
}
