package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/govaudit/pkg/config"
	"github.com/user/govaudit/pkg/engine"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration (cost basis, company, logging)",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return writeStructured(cmd.OutOrStdout(), "yaml", cfg)
	},
}

var setCostCmd = &cobra.Command{
	Use:   "set-cost",
	Short: "Set the default friction cost basis",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		var patch engine.CostBasisPatch
		flags := cmd.Flags()
		if flags.Changed("rate") {
			v, _ := flags.GetFloat64("rate")
			patch.HourlyRate = &v
		}
		if flags.Changed("employees") {
			v, _ := flags.GetInt("employees")
			patch.EmployeeCount = &v
		}
		if flags.Changed("hours") {
			v, _ := flags.GetFloat64("hours")
			patch.RemediationHoursPerIncident = &v
		}
		if flags.Changed("incidents") {
			v, _ := flags.GetFloat64("incidents")
			patch.IncidentsPerMonth = &v
		}
		cfg.CostBasis = patch.Apply(cfg.CostBasis)

		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		c := cfg.CostBasis
		fmt.Fprintf(cmd.OutOrStdout(), "Cost basis updated: $%.2f/h, %d employees, %.1f h/incident, %.1f incidents/month\n",
			c.HourlyRate, c.EmployeeCount, c.RemediationHoursPerIncident, c.IncidentsPerMonth)
		return nil
	},
}

var setCompanyCmd = &cobra.Command{
	Use:   "set-company",
	Short: "Set the default company profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		flags := cmd.Flags()
		for flag, field := range map[string]*string{
			"name":     &cfg.Company.Name,
			"industry": &cfg.Company.Industry,
			"size":     &cfg.Company.Size,
			"region":   &cfg.Company.Region,
		} {
			if flags.Changed(flag) {
				*field, _ = flags.GetString(flag)
			}
		}

		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Company profile updated: %s\n", cfg.Company.Name)
		return nil
	},
}

var setLogFormatCmd = &cobra.Command{
	Use:       "set-log-format [text|json]",
	Short:     "Set the default log output format",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"text", "json"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Log.Format = args[0]
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Log format set to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setCostCmd)
	configCmd.AddCommand(setCompanyCmd)
	configCmd.AddCommand(setLogFormatCmd)

	setCostCmd.Flags().Float64("rate", 0, "Hourly rate")
	setCostCmd.Flags().Int("employees", 0, "Employee count")
	setCostCmd.Flags().Float64("hours", 0, "Remediation hours per incident")
	setCostCmd.Flags().Float64("incidents", 0, "Incidents per month")

	setCompanyCmd.Flags().String("name", "", "Company name")
	setCompanyCmd.Flags().String("industry", "", "Industry")
	setCompanyCmd.Flags().String("size", "", "Company size")
	setCompanyCmd.Flags().String("region", "", "Region")
}
