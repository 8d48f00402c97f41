package latebind

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/spf13/cobra"

	"github.com/latebind/latebind/internal/engine"
	"github.com/latebind/latebind/internal/rules"
	"github.com/latebind/latebind/internal/types"
)

// maxEvaluateBody bounds the request size accepted by /v1/evaluate.
const maxEvaluateBody = 16 << 20

type evaluateRequest struct {
	Files []engine.Input `json:"files"`
}

type evaluateResponse struct {
	types.Report
	Verdict types.Verdict `json:"verdict"`
}

type ruleInfo struct {
	ID       string         `json:"id"`
	Severity types.Severity `json:"severity"`
	Title    string         `json:"title"`
}

func init() {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rule evaluation over HTTP",
		Long:  "Starts an HTTP server exposing POST /v1/evaluate, GET /v1/rules and GET /healthz.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveRoot(".")
			if err != nil {
				return err
			}
			fc := loadConfigs(root)
			ropts, err := ruleOptions(fc)
			if err != nil {
				return err
			}
			cfg := engine.Config{Threads: derefInt(fc.Threads), Rules: ropts, Logger: logger}
			if cmd.Flags().Changed("threads") {
				cfg.Threads = flagThreads
			}
			return serve(cmd.Context(), addr, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8790", "listen address")
	rootCmd.AddCommand(cmd)
}

func newRouter(cfg engine.Config) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/rules", func(w http.ResponseWriter, r *http.Request) {
			var out []ruleInfo
			for _, rule := range rules.New(cfg.Rules).Rules() {
				out = append(out, ruleInfo{ID: rule.ID, Severity: rule.Severity, Title: rule.Title})
			}
			render.JSON(w, r, out)
		})
		r.Post("/evaluate", evaluateHandler(cfg))
	})
	return r
}

func evaluateHandler(cfg engine.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEvaluateBody)).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "invalid json"})
			return
		}
		for _, in := range req.Files {
			if in.Path == "" {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, map[string]string{"error": "file path is required"})
				return
			}
		}
		res, err := engine.ScanInputs(r.Context(), cfg, req.Files)
		if err != nil {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, map[string]string{"error": err.Error()})
			return
		}
		render.JSON(w, r, evaluateResponse{Report: res.Report, Verdict: res.Report.Verdict()})
	}
}

func serve(ctx context.Context, addr string, cfg engine.Config) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Infow("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
