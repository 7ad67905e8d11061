// Package cli wires the sentinelflow commands.
package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sentinelflow/sentinelflow/internal/agent"
	"github.com/sentinelflow/sentinelflow/internal/buildinfo"
	"github.com/sentinelflow/sentinelflow/internal/config"
	"github.com/sentinelflow/sentinelflow/internal/debug"
	"github.com/sentinelflow/sentinelflow/internal/tui"
)

const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"

	styleBoldCyan  = "\033[1;36m"
	styleBoldWhite = "\033[1;37m"
)

var rootCmd = &cobra.Command{
	Use:   "sentinelflow",
	Short: "Logistics reconciliation console",
	Long: styleBoldCyan + `SentinelFlow` + colorReset + ` v` + buildinfo.Current().Version + `

  An operator console for the logistics reconciliation agent. It triggers
  order checks against the agent engine, streams the reasoning trace live,
  and routes drafted apology emails through human approval.

` + colorBold + `Getting Started:` + colorReset + `
  sentinelflow serve              Start the bundled demo engine
  sentinelflow                    Launch the interactive console
  sentinelflow check ORD-002      One-shot check without the TUI
  sentinelflow --web              Console plus a browser mirror`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			return runCheckOnce(cmd, cfg, []string{cfg.DefaultOrder})
		}

		client := agent.New(cfg.EngineURL)
		mirror, err := maybeStartMirror(cmd, cfg)
		if err != nil {
			return err
		}
		defer mirror.stop()
		return tui.Run(cfg, client, mirror.hub)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.String("engine", agent.DefaultBaseURL, "Agent engine base URL")
	pf.Bool("debug", false, "Enable verbose debug logging to ~/.sentinelflow/debug/")

	rootCmd.Flags().String("order", config.DefaultOrderID, "Order ID prefilled in the console")
	rootCmd.Flags().Bool("web", false, "Serve a read-only browser mirror of the dashboard")
	rootCmd.Flags().String("web-host", config.DefaultWebHost, "Mirror bind host")
	rootCmd.Flags().Int("web-port", config.DefaultWebPort, "Mirror bind port (0 picks a free port)")
	rootCmd.Flags().Bool("mdns", false, "Advertise the mirror on the local network via mDNS")
	rootCmd.Flags().Bool("qr", false, "Print a terminal QR code for the mirror URL")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		debugFlag, _ := cmd.Flags().GetBool("debug")
		if !debugFlag && !debug.ShouldEnableFromEnv() {
			return nil
		}
		logPath, err := debug.Init()
		if err != nil {
			return fmt.Errorf("initializing debug logger: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s[debug]%s logging to %s\n", colorDim, colorReset, logPath)
		bi := buildinfo.Current()
		debug.LogKV("cli", "sentinelflow starting",
			"version", bi.Version,
			"commit", bi.CommitHash,
			"pid", os.Getpid(),
			"command", cmd.Name(),
			"args", args,
		)
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		debug.Close()
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
