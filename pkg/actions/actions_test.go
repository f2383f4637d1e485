package actions

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/govaudit/pkg/auditlog"
	"github.com/user/govaudit/pkg/store"
	"github.com/user/govaudit/pkg/taxonomy"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		name string
		args Args
		err  bool
	}{
		{line: "", name: "", args: Args{}},
		{line: "audit", name: "audit", args: Args{}},
		{line: "add-tool id=gpt layer=1", name: "add-tool", args: Args{"id": "gpt", "layer": "1"}},
		{line: `report-risk description="staff paste contracts" severity=high`, name: "report-risk", args: Args{"description": "staff paste contracts", "severity": "high"}},
		{line: `set-company name=""`, name: "set-company", args: Args{"name": ""}},
		{line: "  toggle   id=M-01  ", name: "toggle", args: Args{"id": "M-01"}},
		{line: "connect gpt", err: true},
		{line: `report-risk description="open`, err: true},
	}

	for _, tt := range tests {
		name, args, err := ParseLine(tt.line)
		if tt.err {
			require.Error(t, err, tt.line)
			continue
		}
		require.NoError(t, err, tt.line)
		require.Equal(t, tt.name, name, tt.line)
		require.Equal(t, tt.args, args, tt.line)
	}
}

func newRegistry() (*Registry, *store.Store) {
	s := store.New(taxonomy.Default())
	return NewStoreRegistry(s), s
}

func dispatch(t *testing.T, r *Registry, line string) string {
	t.Helper()
	out, err := r.Dispatch(context.Background(), line, nil)
	require.NoError(t, err, line)
	return out
}

func TestDispatchInventoryAndAudit(t *testing.T) {
	r, s := newRegistry()

	dispatch(t, r, `add-tool id=gpt name="GPT-4" layer=1`)
	out := dispatch(t, r, "add-tool id=otter name=Otter layer=7 risky=true")
	require.Contains(t, out, "governance score now 90")
	dispatch(t, r, "connect a=otter b=gpt")
	require.Len(t, s.Connections(), 1)

	out = dispatch(t, r, "audit")
	require.Contains(t, out, "V-L1-gpt")
	require.Contains(t, out, "V-L7-otter")
	require.Equal(t, 80, s.GovernanceScore())

	out = dispatch(t, r, "trace")
	require.Equal(t, "Shadow AI tool Otter reaches foundation model GPT-4", out)

	dispatch(t, r, "toggle id=M-01")
	out = dispatch(t, r, "audit")
	require.NotContains(t, out, "V-L1-gpt")
	require.Equal(t, 100, s.GovernanceScore())

	dispatch(t, r, "disconnect a=gpt b=otter")
	require.Empty(t, s.Connections())
	dispatch(t, r, "remove-tool id=otter")
	require.Len(t, s.Tools(), 1)
}

func TestDispatchErrors(t *testing.T) {
	r, _ := newRegistry()
	ctx := context.Background()

	_, err := r.Dispatch(ctx, "launch", nil)
	require.ErrorIs(t, err, ErrUnknownAction)

	_, err = r.Dispatch(ctx, "add-tool id=x", nil)
	require.ErrorContains(t, err, "layer")

	_, err = r.Dispatch(ctx, "add-tool id=x layer=9", nil)
	require.ErrorIs(t, err, store.ErrUnknownLayer)

	_, err = r.Dispatch(ctx, "add-tool id=x layer=one", nil)
	require.Error(t, err)

	_, err = r.Dispatch(ctx, "toggle id=M-01", nil)
	require.ErrorContains(t, err, "unknown mitigation")

	_, err = r.Dispatch(ctx, "remove-tool id=ghost", nil)
	require.ErrorIs(t, err, store.ErrUnknownTool)
}

func TestDispatchAssessment(t *testing.T) {
	r, s := newRegistry()

	dispatch(t, r, "set-cost rate=75 hours=4 incidents=4")
	dispatch(t, r, `report-risk description="Vendor trains on our data" severity=high`)
	out := dispatch(t, r, `report-risk description="Vendor trains on our data"`)
	require.Equal(t, "Risk already logged.", out)
	dispatch(t, r, `report-risk description="No AI policy"`)
	require.Equal(t, 2400.0, s.FrictionCost())

	out = dispatch(t, r, "set-maturity literacy=1.5 governance=3.5")
	require.Contains(t, out, "overall 2.50")

	dispatch(t, r, "set-adoption score=150")
	require.Equal(t, 100, s.AdoptionScore())

	dispatch(t, r, `set-company name="Acme Legal" industry=Legal`)
	require.Equal(t, "Acme Legal", s.Company().Name)

	out = dispatch(t, r, "roadmap")
	require.Contains(t, out, "Phase 1: AI Literacy Uplift")

	out = dispatch(t, r, "score")
	require.Contains(t, out, "Friction cost: $2400.00/month (2 logged risks)")
}

func TestDispatchSnapshots(t *testing.T) {
	r, _ := newRegistry()
	path := filepath.Join(t.TempDir(), "baseline.json")

	dispatch(t, r, "add-tool id=gpt layer=1")
	dispatch(t, r, "audit")
	dispatch(t, r, "save-snapshot file="+path)

	dispatch(t, r, "add-tool id=lc layer=3 risky=true")
	dispatch(t, r, "toggle id=M-01")
	dispatch(t, r, "audit")

	out := dispatch(t, r, "diff-snapshot file="+path)
	require.Contains(t, out, "New (1)\n  [HIGH] V-L3-lc")
	require.Contains(t, out, "Resolved (1)\n  [CRITICAL] V-L1-gpt")
	require.Contains(t, out, "Unchanged (0)")
}

func TestHelpListsActions(t *testing.T) {
	r, _ := newRegistry()
	out := dispatch(t, r, "help")
	for _, a := range r.Actions() {
		require.Contains(t, out, a.Name())
	}
}

func countAudits(rec *auditlog.MemoryRecorder) int {
	n := 0
	for _, a := range rec.Actions() {
		if a == "run_audit" {
			n++
		}
	}
	return n
}

func TestReadsSeeLatestInventory(t *testing.T) {
	rec := auditlog.NewMemoryRecorder(0)
	s := store.New(taxonomy.Default(), store.WithRecorder(rec))
	r := NewStoreRegistry(s)

	dispatch(t, r, "add-tool id=gpt layer=1")
	dispatch(t, r, "add-tool id=claude layer=1")
	require.Equal(t, 0, countAudits(rec))

	out := dispatch(t, r, "score")
	require.Contains(t, out, "Governance: 60/100")
	require.Equal(t, 1, countAudits(rec))

	out = dispatch(t, r, "roadmap")
	require.Contains(t, out, "Technical Hardening")
	require.Contains(t, out, "Patch 2 Unmitigated Vulnerabilities")
	require.Equal(t, 1, countAudits(rec))

	dispatch(t, r, "toggle id=M-01")
	out = dispatch(t, r, "score")
	require.Contains(t, out, "Governance: 100/100")
	require.Equal(t, 2, countAudits(rec))
}
