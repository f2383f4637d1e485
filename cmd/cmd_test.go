package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/govaudit/pkg/config"
	"github.com/user/govaudit/pkg/report"
)

const testWorkspace = `
company:
  name: Acme
tools:
  - id: gpt
    name: GPT-4
    layer: 1
  - id: otter
    name: Otter
    layer: 7
    risky: true
connections:
  - [otter, gpt]
maturity:
  literacy: 1
  governance: 3
`

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	t.Cleanup(func() { config.Override = "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config-dir", t.TempDir()}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func writeWorkspace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testWorkspace), 0600))
	return path
}

func TestAuditCommandJSON(t *testing.T) {
	ws := writeWorkspace(t)
	snap := filepath.Join(t.TempDir(), "snap.json")

	out := run(t, "", "audit", "-f", ws, "-o", "json", "--save", snap, "--baseline", "")

	var got auditOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 80, got.GovernanceScore)
	require.Len(t, got.Audit.Vulnerabilities, 2)
	require.Len(t, got.Exposure, 1)
	require.Nil(t, got.Diff)
	require.FileExists(t, snap)

	out = run(t, "", "audit", "-f", ws, "-o", "json", "--save", "", "--baseline", snap)
	got = auditOutput{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Diff)
	require.Len(t, got.Diff.Unchanged, 2)
	require.Empty(t, got.Diff.New)
}

func TestAuditCommandText(t *testing.T) {
	ws := writeWorkspace(t)
	out := run(t, "", "audit", "-f", ws, "-o", "text", "--save", "", "--baseline", "")
	require.Contains(t, out, "V-L1-gpt")
	require.Contains(t, out, "Shadow AI tool Otter reaches foundation model GPT-4")
}

func TestRoadmapCommandRaw(t *testing.T) {
	ws := writeWorkspace(t)
	out := run(t, "", "roadmap", "-f", ws, "--raw", "--deliverables=false")
	require.Contains(t, out, "## Phase 1: AI Literacy Uplift")
}

func TestReportCommand(t *testing.T) {
	ws := writeWorkspace(t)
	out := run(t, "", "report", "-f", ws, "-o", "json")

	var sum report.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	require.Equal(t, "Acme", sum.CompanyName)
	require.Contains(t, sum.DiscoveryInsights, "Shadow AI Tool Detected: Otter")
}

func TestInteractiveCommand(t *testing.T) {
	ws := writeWorkspace(t)
	out := run(t, "toggle id=M-01\naudit\nbogus\nquit\n", "interactive", "-f", ws)
	require.Contains(t, out, "M-01 is now implemented")
	require.Contains(t, out, "Governance score: 100/100")
	require.Contains(t, out, "Error: unknown action: bogus")
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { config.Override = "" })

	rootCmd.SetArgs([]string{"--config-dir", dir, "config", "set-cost", "--rate", "120"})
	require.NoError(t, rootCmd.Execute())
	rootCmd.SetArgs([]string{"--config-dir", dir, "config", "set-company", "--name", "Globex"})
	require.NoError(t, rootCmd.Execute())

	out.Reset()
	rootCmd.SetArgs([]string{"--config-dir", dir, "config", "show"})
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "hourly_rate: 120")
	require.Contains(t, out.String(), "name: Globex")
}

func TestTaxonomyCommand(t *testing.T) {
	out := run(t, "", "taxonomy")
	require.Contains(t, out, "L1 Foundation Models")
	require.Contains(t, out, "L7 Agent Ecosystem")
	require.Contains(t, out, "M-06")
}
