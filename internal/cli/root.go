// Package cli implements the reviewreminderd command line.
package cli

import (
	"fmt"
	"io"
	"reviewreminder/internal"
	"reviewreminder/internal/di"
	"reviewreminder/internal/models"
	"reviewreminder/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "reviewreminderd",
	Short: "Decides when to ask users to rate an app",
	Long: `reviewreminderd tracks app launches per version and shows a rating
prompt once the configured usage thresholds are met and the network is
reachable. The host app reports lifecycle events over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flags.DebugMode, "debug", false, "Mirror logs to the console")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(resetCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := di.InitApp(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		return app.Run()
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the persisted usage counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cleanup, err := di.InitMaintenance(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		return printState(cmd.OutOrStdout(), m, m.State())
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a fresh trial period for the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, cleanup, err := di.InitMaintenance(&flags)
		if err != nil {
			return err
		}
		defer cleanup()

		snapshot, err := m.Reset()
		if err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		return printState(cmd.OutOrStdout(), m, snapshot)
	},
}

type stateOutput struct {
	AppID          string               `json:"app_id"`
	CurrentVersion string               `json:"current_version"`
	Usage          models.UsageSnapshot `json:"usage"`
}

func printState(w io.Writer, m *internal.Maintenance, snapshot models.UsageSnapshot) error {
	out, err := json.MarshalIndent(stateOutput{
		AppID:          m.AppID(),
		CurrentVersion: m.CurrentVersion(),
		Usage:          snapshot,
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
