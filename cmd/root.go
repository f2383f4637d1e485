package cmd

import (
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/user/govaudit/pkg/auditlog"
	"github.com/user/govaudit/pkg/config"
	"github.com/user/govaudit/pkg/engine"
	"github.com/user/govaudit/pkg/store"
	"github.com/user/govaudit/pkg/taxonomy"
	"github.com/user/govaudit/pkg/workspace"
)

var rootCmd = &cobra.Command{
	Use:   "govaudit",
	Short: "AI governance risk assessment and remediation planning",
	Long: `govaudit maps an organisation's AI tool inventory onto a seven-layer
threat model, scores governance health, tracks mitigations and plans a
phased remediation roadmap.`,
	SilenceUsage: true,
}

var (
	DebugMode bool
	LogFormat string
	ConfigDir string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "Log output format: text or json (default from config)")
	rootCmd.PersistentFlags().StringVar(&ConfigDir, "config-dir", "", "Directory holding config.yaml (default ~/.govaudit)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if ConfigDir != "" {
			config.Override = ConfigDir
		}
	}
}

// newLogger builds the process logger. Logs go to stderr so command output
// stays pipeable.
func newLogger(cfg *config.Config) log.Logger {
	level := zerolog.InfoLevel
	if DebugMode {
		level = zerolog.DebugLevel
	}
	opts := []log.Option{log.LevelOption(level)}

	format := LogFormat
	if format == "" {
		format = cfg.Log.Format
	}
	if format == "json" {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(os.Stderr, opts...)
}

// openStore loads the config, builds a store over the built-in taxonomy and,
// when path is set, replays the workspace into it.
func openStore(path string) (*store.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	var recorder auditlog.Recorder = auditlog.Discard{}
	if DebugMode {
		recorder = auditlog.NewLogRecorder(logger)
	}

	s := store.New(taxonomy.Default(),
		store.WithLogger(logger),
		store.WithRecorder(recorder),
		store.WithCostBasis(cfg.CostBasis),
	)
	s.SetCompany(store.Company(cfg.Company))

	if path == "" {
		return s, nil
	}
	ws, err := workspace.Load(path)
	if err != nil {
		return nil, err
	}
	if err := ws.Apply(s); err != nil {
		return nil, fmt.Errorf("failed to apply workspace: %w", err)
	}
	logger.Debug("workspace applied", "path", path, "tools", len(s.Tools()))
	return s, nil
}

// requireWorkspace reads the -f flag of cmd
func requireWorkspace(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return "", fmt.Errorf("--file is required")
	}
	return path, nil
}

func severityCounts(vulns []engine.Risk) string {
	return fmt.Sprintf("%d critical, %d high, %d medium, %d low",
		engine.CountBySeverity(vulns, engine.SeverityCritical),
		engine.CountBySeverity(vulns, engine.SeverityHigh),
		engine.CountBySeverity(vulns, engine.SeverityMedium),
		engine.CountBySeverity(vulns, engine.SeverityLow),
	)
}
