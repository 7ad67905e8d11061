package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sentinelflow/sentinelflow/internal/config"
	"github.com/sentinelflow/sentinelflow/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bundled demo engine",
	Long: `Start a local reconciliation engine with a scripted order catalog.
The console talks to it over the same HTTP and SSE surface as the real one.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", fmt.Sprintf(":%d", config.DefaultServePort), "Listen address")
	serveCmd.Flags().String("orders", "", "Path to a YAML order catalog (default: built-in demo orders)")
	serveCmd.Flags().Duration("step-delay", 400*time.Millisecond, "Pause between streamed steps")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	ordersPath, _ := cmd.Flags().GetString("orders")
	stepDelay, _ := cmd.Flags().GetDuration("step-delay")

	catalog := server.DefaultCatalog()
	if ordersPath != "" {
		var err error
		catalog, err = server.LoadCatalog(ordersPath)
		if err != nil {
			return fmt.Errorf("loading order catalog: %w", err)
		}
	}

	engine := server.New(server.Options{Catalog: catalog, StepDelay: stepDelay})
	httpServer := &http.Server{
		Addr:    addr,
		Handler: engine.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	fmt.Printf("Demo engine listening on %s (%d orders)\n", addr, len(catalog.Orders))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
