package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helix-bio/formulation-cli/internal/config"
	"github.com/helix-bio/formulation-cli/internal/designio"
	"github.com/helix-bio/formulation-cli/internal/engine"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the formulation scoring HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := engine.ValidateConfig(cfg.Engine); err != nil {
			return err
		}

		router := buildRouter(cfg.Engine)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter assembles the scoring API routes. Kept separate from the
// serve command so handlers are testable without a listener.
func buildRouter(engineCfg config.EngineConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/score", func(w http.ResponseWriter, r *http.Request) {
		design, err := designio.DecodeDesign(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		ev, err := engine.Evaluate(design, engineCfg)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		zap.L().Info("scored design",
			zap.String("design", design.Name),
			zap.Float64("overall", ev.Overall),
		)
		writeJSON(w, http.StatusOK, ev)
	})

	r.Post("/v1/batch", func(w http.ResponseWriter, r *http.Request) {
		designs, err := designio.DecodeDesigns(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		results, err := engine.EvaluateBatch(designs, engineCfg, nil)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusOK, results)
	})

	r.Post("/v1/checklist", func(w http.ResponseWriter, r *http.Request) {
		design, err := designio.DecodeDesign(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusOK, engine.Checklist(design))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
