package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtlxbridge/mtlxbridge/pkg/api"
	"github.com/mtlxbridge/mtlxbridge/pkg/history"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	mongoURI string // MongoDB connection string for run history
	mongoDB  string // MongoDB database name
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", mongoDB: appName}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP translation API",
		Long: `Run the HTTP translation API.

The server exposes translation and validation over HTTP:

  POST /api/v1/translate   scene dump in, MaterialX documents out
  POST /api/v1/validate    .mtlx document in, validation report out
  GET  /api/v1/runs        recent export runs
  GET  /api/v1/runs/{id}   one export run

Run history is kept in memory unless --mongo-uri points at a MongoDB
instance shared between server replicas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for shared run history (in-memory if empty)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newHistoryStore(ctx, opts)
	if err != nil {
		return fmt.Errorf("history store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			c.Logger.Warn("close history store", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           api.New(api.Options{History: store, Logger: c.Logger}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newHistoryStore(ctx context.Context, opts serveOpts) (history.Store, error) {
	if opts.mongoURI == "" {
		return history.NewMemoryStore(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return history.NewMongoStore(connectCtx, opts.mongoURI, opts.mongoDB)
}
