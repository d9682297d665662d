package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/config"
	"github.com/alexiusacademia/gotruss/internal/version"
)

var (
	// Resolved by the root pre-run for every subcommand
	cfg    = config.Default()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	// Persistent flags
	envFile  string
	logLevel string
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "gotruss",
	Short: "2-D truss bridge solver",
	Long: `gotruss - Go Truss Bridge Solver

A CLI tool for the static analysis of 2-D pin-jointed truss bridges.

The roadway is the chain of nodes at y = 0. A total downward load is shared
equally by the roadway nodes between the two end supports, the member forces
and support reactions are found from joint equilibrium, and the load is scaled
until the most stressed member reaches its capacity.

This tool helps with:
  - Member forces (+ tension, - compression) and support reactions
  - Load capacity, critical members and structural efficiency
  - Factored roadway loads from NSCP load combinations
  - Editing and converting truss files (text and JSON)
  - Force diagrams, spreadsheets and PDF reports

Defaults may be set in the environment or a .env file:
  GOTRUSS_CAPACITY, GOTRUSS_LOAD_ANGLE (degrees), GOTRUSS_LOG_LEVEL,
  GOTRUSS_DUPLICATES (allow, reject or merge), NO_COLOR`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gotruss v%-47s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Truss Bridge Solver                                  ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Static analysis of 2-D pin-jointed truss bridges.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Member forces and support reactions by joint equilibrium")
		fmt.Fprintln(out, "    • Load capacity, critical members and efficiency")
		fmt.Fprintln(out, "    • Factored roadway loads using NSCP load combinations")
		fmt.Fprintln(out, "    • Text and JSON truss files, images, XLSX and PDF reports")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gotruss --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file with GOTRUSS_* defaults")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default from GOTRUSS_LOG_LEVEL or info)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")
}

// setup resolves the configuration and the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		if c.LogLevel, err = config.ParseLevel(logLevel); err != nil {
			return err
		}
	}
	if noColor {
		c.NoColor = true
	}
	cfg = c

	logger = slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
	}))
	logger.Debug("configuration resolved",
		"capacity", cfg.Capacity,
		"load_angle_deg", cfg.LoadAngle,
		"duplicates", cfg.Duplicates.String(),
	)
	return nil
}
