package engine

const (
	// MaxScore is the upper bound of every posture score
	MaxScore = 100
	// DefaultAdoptionScore is the adoption score before any external input
	DefaultAdoptionScore = 50
	// RiskyToolPenalty is subtracted from the governance score as soon as a risky tool is added
	RiskyToolPenalty = 10

	criticalPenalty = 20
	highPenalty     = 10
)

// ClampScore keeps a score within [0, 100]
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// GovernanceScore is the authoritative governance health computed from a
// vulnerability set
func GovernanceScore(vulns []Risk) int {
	critical := CountBySeverity(vulns, SeverityCritical)
	high := CountBySeverity(vulns, SeverityHigh)
	return ClampScore(MaxScore - criticalPenalty*critical - highPenalty*high)
}

// CostBasis drives the friction cost estimate
type CostBasis struct {
	HourlyRate                  float64 `json:"hourlyRate" yaml:"hourly_rate"`
	EmployeeCount               int     `json:"employeeCount" yaml:"employee_count"`
	RemediationHoursPerIncident float64 `json:"remediationHoursPerIncident" yaml:"remediation_hours_per_incident"`
	IncidentsPerMonth           float64 `json:"incidentsPerMonth" yaml:"incidents_per_month"`
}

// Cost basis defaults applied to missing or non-positive values
const (
	DefaultHourlyRate        = 75.0
	DefaultEmployeeCount     = 50
	DefaultRemediationHours  = 4.0
	DefaultIncidentsPerMonth = 4.0
)

// DefaultCostBasis returns the documented defaults
func DefaultCostBasis() CostBasis {
	return CostBasis{
		HourlyRate:                  DefaultHourlyRate,
		EmployeeCount:               DefaultEmployeeCount,
		RemediationHoursPerIncident: DefaultRemediationHours,
		IncidentsPerMonth:           DefaultIncidentsPerMonth,
	}
}

// Normalize replaces non-positive fields with defaults
func (c CostBasis) Normalize() CostBasis {
	if c.HourlyRate <= 0 {
		c.HourlyRate = DefaultHourlyRate
	}
	if c.EmployeeCount <= 0 {
		c.EmployeeCount = DefaultEmployeeCount
	}
	if c.RemediationHoursPerIncident <= 0 {
		c.RemediationHoursPerIncident = DefaultRemediationHours
	}
	if c.IncidentsPerMonth <= 0 {
		c.IncidentsPerMonth = DefaultIncidentsPerMonth
	}
	return c
}

// CostBasisPatch is a partial update; nil fields are left unchanged
type CostBasisPatch struct {
	HourlyRate                  *float64
	EmployeeCount               *int
	RemediationHoursPerIncident *float64
	IncidentsPerMonth           *float64
}

// Apply merges the patch into c and normalizes the result
func (p CostBasisPatch) Apply(c CostBasis) CostBasis {
	if p.HourlyRate != nil {
		c.HourlyRate = *p.HourlyRate
	}
	if p.EmployeeCount != nil {
		c.EmployeeCount = *p.EmployeeCount
	}
	if p.RemediationHoursPerIncident != nil {
		c.RemediationHoursPerIncident = *p.RemediationHoursPerIncident
	}
	if p.IncidentsPerMonth != nil {
		c.IncidentsPerMonth = *p.IncidentsPerMonth
	}
	return c.Normalize()
}

// FrictionCost estimates the recurring monthly cost of outstanding risks.
// riskCount is the size of the ad-hoc risk log, not the vulnerability set.
func FrictionCost(riskCount int, c CostBasis) float64 {
	if riskCount <= 0 {
		return 0
	}
	return float64(riskCount) * c.IncidentsPerMonth * (c.RemediationHoursPerIncident * c.HourlyRate)
}

// MaturityScores are the maturity axes, each within [0, 4]
type MaturityScores struct {
	Literacy   float64  `json:"literacy" yaml:"literacy"`
	Governance float64  `json:"governance" yaml:"governance"`
	Adoption   *float64 `json:"adoption,omitempty" yaml:"adoption,omitempty"`
	Overall    float64  `json:"overall" yaml:"overall"`
}

// MaxMaturity is the upper bound of a maturity axis
const MaxMaturity = 4.0

func clampMaturity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxMaturity {
		return MaxMaturity
	}
	return v
}

// NewMaturityScores clamps each axis and computes Overall as the mean of the
// populated axes
func NewMaturityScores(literacy, governance float64, adoption *float64) MaturityScores {
	s := MaturityScores{
		Literacy:   clampMaturity(literacy),
		Governance: clampMaturity(governance),
	}
	sum, n := s.Literacy+s.Governance, 2.0
	if adoption != nil {
		a := clampMaturity(*adoption)
		s.Adoption = &a
		sum += a
		n++
	}
	s.Overall = sum / n
	return s
}

// Clone returns a copy that does not share the adoption pointer
func (m MaturityScores) Clone() MaturityScores {
	if m.Adoption != nil {
		a := *m.Adoption
		m.Adoption = &a
	}
	return m
}
