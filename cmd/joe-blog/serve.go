package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joestump/joe-blog/internal/auth"
	"github.com/joestump/joe-blog/internal/blog"
	"github.com/joestump/joe-blog/internal/config"
	"github.com/joestump/joe-blog/internal/db"
	"github.com/joestump/joe-blog/internal/handler"
	"github.com/joestump/joe-blog/internal/session"
	"github.com/joestump/joe-blog/internal/store"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sessionManager := session.NewSessionManager(database, cfg.DB.Driver, cfg.SessionLifetime, !cfg.InsecureCookies)
			svc := blog.NewService(cfg.LLM.Provider, cfg.LLM.BaseURL, nil)
			deps := handler.Deps{
				SessionManager: sessionManager,
				Blog:           svc,
				Defaults:       blog.Defaults(cfg.LLM.Model),
			}

			// The writer outlives the server so requests finishing during
			// shutdown still get their records drained.
			writerCtx, stopWriter := context.WithCancel(context.Background())
			defer stopWriter()
			writerDone := make(chan struct{})
			if cfg.History.Enabled {
				generationStore := store.NewGenerationStore(database)
				historyCh := make(chan store.Generation, 64)
				go func() {
					defer close(writerDone)
					runHistoryWriter(writerCtx, historyCh, generationStore, cfg.History.Retention, time.Hour)
				}()
				svc.SetHistory(historyCh)
				deps.Generations = generationStore
			} else {
				close(writerDone)
			}
			if cfg.API.RequireToken {
				deps.Tokens = auth.NewSQLTokenStore(database)
			}

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           handler.NewRouter(deps),
				ReadHeaderTimeout: 10 * time.Second,
			}
			shutdownDone := make(chan struct{})
			go func() {
				defer close(shutdownDone)
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.Printf("shutdown: %v", err)
				}
				stopWriter()
			}()

			log.Printf("listening on %s (provider %s, model %s)", cfg.HTTP.Addr, cfg.LLM.Provider, cfg.LLM.Model)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				stopWriter()
				<-writerDone
				return err
			}
			<-shutdownDone
			<-writerDone
			log.Println("server stopped")
			return nil
		},
	}
}
