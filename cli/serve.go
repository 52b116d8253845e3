package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"mention-radar/auth"
	"mention-radar/database"
	"mention-radar/handlers"
	"mention-radar/metrics"
	"mention-radar/notify"
)

const shutdownTimeout = 10 * time.Second

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard and API server",
		Run:   runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := openDatabase()
	if err != nil {
		exitErr("init database", err)
	}
	defer database.Close()

	gin.SetMode(cfg.Server.GinMode)

	authSvc := auth.NewService(database.GetDB(), cfg.Auth.SessionTTL)
	purge, err := authSvc.SchedulePurge(cfg.Auth.PurgeSpec)
	if err != nil {
		exitErr("schedule purge", err)
	}
	defer purge.Stop()

	notes := notify.NewCenter(cfg.Notifications.Duration)
	defer notes.Close()

	app := handlers.NewApp(cfg, authSvc, notes, metrics.New())
	srv := &http.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      handlers.NewRouter(app),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting mention-radar %s on %s (%s)", Version, cfg.Server.ListenAddress, cfg.Database.Driver)
		log.Printf("Dashboard: http://localhost%s/dashboard", cfg.Server.ListenAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("Failed to start server: %v", err)
		}
		return
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
