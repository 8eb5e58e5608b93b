package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "advocates/internal/config"
	api "advocates/internal/http"
	"advocates/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the advocates HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.env.AppAddr)
			if err != nil {
				return err
			}
			return serve(ctx, a.env, ln)
		},
	}
}

// serve runs the API on ln until ctx is done, then drains in-flight requests.
func serve(ctx context.Context, env intconfig.Env, ln net.Listener) error {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	intconfig.SetDatabaseURL(env.DatabaseURL)
	defer intconfig.CloseDB()

	srv := &http.Server{
		Handler:           api.NewHandler(env),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.L().Info("server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.L().Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		utils.L().Info("server stopped")
		return nil
	})
	return g.Wait()
}
