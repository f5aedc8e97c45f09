package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"archviz/internal/catalog"
	"archviz/internal/config"
	"archviz/internal/httpclient"
	"archviz/internal/openai"
	"archviz/internal/visualizer"
)

type server struct {
	cfg     config.Config
	logger  *slog.Logger
	catalog *catalog.Registry
	orch    *visualizer.Orchestrator
}

type apiError struct {
	Error string `json:"error"`
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := newLogger(cfg)

	registry, err := catalog.Load()
	if err != nil {
		logger.Error("catalog load failed", "err", err)
		os.Exit(1)
	}

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
	})

	provider := openai.New(openai.Options{
		APIKey:     cfg.OpenAIAPIKey,
		BaseURL:    cfg.OpenAIBaseURL,
		Model:      cfg.OpenAIModel,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	orch := visualizer.New(visualizer.Options{
		Editor:  provider,
		WorkDir: cfg.WorkDir,
		Logger:  logger,
	})

	s := &server{cfg: cfg, logger: logger, catalog: registry, orch: orch}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/catalog", s.handleCatalog)
	mux.HandleFunc("/api/analyze-exterior", s.handleAnalyzeExterior)
	mux.HandleFunc("/api/edit-image", s.handleEditImage)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           withLogging(mux, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("web started", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
	logger.Info("shut down")
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.Options())
}

// handleAnalyzeExterior is a compatibility acknowledgement for the frontend;
// the real region detection happens inside the edit flow's mask pass.
func (s *server) handleAnalyzeExterior(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid_exterior_image": true})
}

func (s *server) handleEditImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid multipart form"})
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "missing image"})
		return
	}
	defer file.Close()

	imgBytes, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "failed to read image"})
		return
	}

	rawSelections := strings.TrimSpace(r.FormValue("user_selections"))
	if rawSelections == "" {
		rawSelections = "{}"
	}
	var selections map[string]catalog.NameSelection
	if err := json.Unmarshal([]byte(rawSelections), &selections); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid user_selections"})
		return
	}

	ids := catalog.ResolveNames(selections, s.logger)
	if len(ids) == 0 {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "No valid products selected."})
		return
	}

	resolved, err := s.catalog.ValidateSelection(ids)
	if err != nil {
		var vErr *catalog.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, apiError{Error: vErr.Reason})
			return
		}
		writeJSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
		return
	}

	payload := visualizer.BuildPayload(resolved)

	// Uploads get request-unique names so concurrent edits never clobber
	// each other's artifacts.
	uploadPath := filepath.Join(s.cfg.WorkDir, fmt.Sprintf("upload_%s.img", uuid.NewString()))
	if err := os.WriteFile(uploadPath, imgBytes, 0o644); err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to store upload"})
		return
	}
	defer os.Remove(uploadPath)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	out, err := s.orch.Run(ctx, uploadPath, payload)
	if err != nil {
		s.logger.Error("edit failed", "err", err)
		writeJSON(w, http.StatusBadGateway, apiError{Error: err.Error()})
		return
	}

	w.Header().Set("content-type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func withLogging(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http", "method", r.Method, "path", r.URL.Path, "dur_ms", time.Since(start).Milliseconds())
	})
}
