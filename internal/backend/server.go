package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/f3rmion/senti/internal/sentiment"
	"github.com/rs/zerolog"
)

// AnalyzePath is the route the analyzer is served on.
const AnalyzePath = "/api/analyze-sentiment"

// maxRequestBytes caps the size of an analyze request body.
const maxRequestBytes = 1 << 20

// API serves the analyzer over HTTP.
type API struct {
	analyzer *Analyzer
	logger   zerolog.Logger
}

// NewAPI creates an API backed by analyzer.
func NewAPI(analyzer *Analyzer, logger zerolog.Logger) *API {
	return &API{analyzer: analyzer, logger: logger}
}

// RegisterRoutes adds the analyzer routes to mux.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST "+AnalyzePath, a.handleAnalyze)
	mux.HandleFunc("OPTIONS "+AnalyzePath, handlePreflight)
}

// Handler returns the full handler with CORS and request logging applied.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.RegisterRoutes(mux)
	return a.logRequests(withCORS(mux))
}

func (a *API) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		renderError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			renderError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		renderError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}

	raw, ok := body["text"]
	if !ok {
		renderError(w, http.StatusBadRequest, "Missing required field: text")
		return
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		renderError(w, http.StatusBadRequest, "Field text must be a string")
		return
	}

	text = strings.TrimSpace(text)
	if text == "" {
		renderError(w, http.StatusBadRequest, "Text field cannot be empty")
		return
	}

	res, err := a.analyzer.Analyze(text)
	if errors.Is(err, ErrNoSentences) {
		renderError(w, http.StatusBadRequest, "No valid sentences found in text")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("analyze text")
		renderError(w, http.StatusInternalServerError, fmt.Sprintf("An error occurred while processing the text: %s", err))
		return
	}

	renderJSON(w, http.StatusOK, res)
}

func handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		a.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func renderError(w http.ResponseWriter, status int, msg string) {
	renderJSON(w, status, sentiment.ErrorBody{Error: msg})
}

// Serve runs the API on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, api *API) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		api.logger.Info().Str("addr", addr).Str("path", AnalyzePath).Msg("analyzer listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving analyzer: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down analyzer: %w", err)
		}
		return nil
	}
}
