package actions

import (
	"context"
	"fmt"

	"github.com/user/govaudit/pkg/engine"
	"github.com/user/govaudit/pkg/store"
)

// AssessmentActions record risks, scores, cost inputs and mitigation status
func AssessmentActions(s *store.Store) []Action {
	return []Action{
		Func{
			ActionName: "report-risk",
			Summary:    "Adds a concern to the risk log",
			Syntax:     `report-risk description="<text>" [severity=low|medium|high|critical] [category=<category>]`,
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				desc, err := args.Required("description")
				if err != nil {
					return "", err
				}
				added := s.ReportRisk(engine.Risk{
					Severity:    engine.ParseSeverity(args.String("severity", "")),
					Category:    args.String("category", "General"),
					Description: desc,
					Origin:      engine.OriginManual,
				})
				if !added {
					return "Risk already logged.", nil
				}
				return fmt.Sprintf("Risk logged. Estimated friction cost is now $%.2f/month.", s.FrictionCost()), nil
			},
		},
		Func{
			ActionName: "toggle",
			Summary:    "Flips a mitigation between proposed and implemented",
			Syntax:     "toggle id=<mitigation id>",
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				id, err := args.Required("id")
				if err != nil {
					return "", err
				}
				status, ok := s.ToggleMitigation(id)
				if !ok {
					return "", fmt.Errorf("unknown mitigation %s", id)
				}
				return fmt.Sprintf("%s is now %s.", id, status), nil
			},
		},
		Func{
			ActionName: "set-cost",
			Summary:    "Updates the friction cost basis",
			Syntax:     "set-cost [rate=<hourly>] [employees=<n>] [hours=<per incident>] [incidents=<per month>]",
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				var patch engine.CostBasisPatch
				if v, ok, err := args.Float("rate"); err != nil {
					return "", err
				} else if ok {
					patch.HourlyRate = &v
				}
				if v, ok, err := args.Int("employees"); err != nil {
					return "", err
				} else if ok {
					patch.EmployeeCount = &v
				}
				if v, ok, err := args.Float("hours"); err != nil {
					return "", err
				} else if ok {
					patch.RemediationHoursPerIncident = &v
				}
				if v, ok, err := args.Float("incidents"); err != nil {
					return "", err
				} else if ok {
					patch.IncidentsPerMonth = &v
				}

				c := s.UpdateCostBasis(patch)
				return fmt.Sprintf("Cost basis: $%.2f/h, %d employees, %.1f h/incident, %.1f incidents/month. Friction cost $%.2f/month.",
					c.HourlyRate, c.EmployeeCount, c.RemediationHoursPerIncident, c.IncidentsPerMonth, s.FrictionCost()), nil
			},
		},
		Func{
			ActionName: "set-maturity",
			Summary:    "Records maturity scores on a 0-4 scale",
			Syntax:     "set-maturity literacy=<0-4> governance=<0-4> [adoption=<0-4>]",
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				literacy, _, err := args.Float("literacy")
				if err != nil {
					return "", err
				}
				governance, _, err := args.Float("governance")
				if err != nil {
					return "", err
				}
				in := store.MaturityInput{Literacy: literacy, Governance: governance}
				if v, ok, err := args.Float("adoption"); err != nil {
					return "", err
				} else if ok {
					in.Adoption = &v
				}

				m := s.SetMaturityScores(in)
				return fmt.Sprintf("Maturity: literacy %.1f, governance %.1f, overall %.2f.", m.Literacy, m.Governance, m.Overall), nil
			},
		},
		Func{
			ActionName: "set-adoption",
			Summary:    "Sets the adoption/ROI score",
			Syntax:     "set-adoption score=<0-100>",
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				v, ok, err := args.Int("score")
				if err != nil {
					return "", err
				}
				if !ok {
					return "", fmt.Errorf("missing argument %q", "score")
				}
				return fmt.Sprintf("Adoption score: %d.", s.SetAdoptionScore(v)), nil
			},
		},
		Func{
			ActionName: "set-company",
			Summary:    "Sets the company profile",
			Syntax:     `set-company name="<name>" [industry=<industry>] [size=<size>] [region=<region>]`,
			Run: func(ctx context.Context, args Args, progress func(string)) (string, error) {
				name, err := args.Required("name")
				if err != nil {
					return "", err
				}
				s.SetCompany(store.Company{
					Name:     name,
					Industry: args.String("industry", ""),
					Size:     args.String("size", ""),
					Region:   args.String("region", ""),
				})
				return fmt.Sprintf("Company set to %s.", name), nil
			},
		},
	}
}
