package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sentinelflow/sentinelflow/internal/agent"
	"github.com/sentinelflow/sentinelflow/internal/batch"
	"github.com/sentinelflow/sentinelflow/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check [order-id...]",
	Short: "Run order checks without the interactive console",
	Long: `Run one reconciliation batch and print the trace and result to stdout.
Drafted emails are reported but never approved; approval needs the console.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		orderIDs := args
		if len(orderIDs) == 0 {
			orderIDs = []string{cfg.DefaultOrder}
		}
		return runCheckOnce(cmd, cfg, orderIDs)
	},
}

func init() {
	checkCmd.Flags().String("order", config.DefaultOrderID, "Order ID checked when no arguments are given")
	checkCmd.Flags().Bool("json", false, "Print the final state as JSON instead of text")
	rootCmd.AddCommand(checkCmd)
}

func runCheckOnce(cmd *cobra.Command, cfg config.Config, orderIDs []string) error {
	client := agent.New(cfg.EngineURL)
	state := batch.NewState()
	asJSON, _ := cmd.Flags().GetBool("json")

	var failed error
	batch.Run(context.Background(), client, orderIDs, func(ev batch.Event) {
		state.Apply(ev)
		if asJSON {
			if f, ok := ev.(batch.FailedEvent); ok {
				failed = f.Err
			}
			return
		}
		switch e := ev.(type) {
		case batch.RunStartedEvent:
			if e.Total > 1 {
				fmt.Printf("── [%d/%d] %s ──\n", e.Index+1, e.Total, e.OrderID)
			}
		case batch.StepEvent:
			fmt.Println(e.Text)
		case batch.FailedEvent:
			failed = e.Err
		}
	})

	if asJSON {
		out := struct {
			Output  string `json:"output"`
			Stats   any    `json:"stats"`
			History any    `json:"history"`
			Error   string `json:"error,omitempty"`
		}{
			Output:  state.Output,
			Stats:   state.Stats,
			History: state.History.Entries(),
		}
		if failed != nil {
			out.Error = failed.Error()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		fmt.Println()
		fmt.Println(state.Output)
		fmt.Printf("\n%d checked · %d drafted\n", state.Stats.OrdersChecked, state.Stats.EmailsDrafted)
	}
	return failed
}
