// Package http exposes the latest valuation run over a small read-only
// JSON API. The pipeline publishes a finished board into a BoardStore;
// handlers never trigger computation themselves.
package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"bigboard/internal/apierrors"
	"bigboard/internal/board"
	"bigboard/pkg/contracts/domain"
)

// BoardStore holds the most recent completed run for serving. Publish
// replaces the snapshot atomically; readers always see a full run.
type BoardStore struct {
	mu          sync.RWMutex
	board       *domain.RankedBoard
	comparisons []domain.MarketComparison
}

// NewBoardStore creates an empty store.
func NewBoardStore() *BoardStore {
	return &BoardStore{}
}

// Publish replaces the stored snapshot with a completed run.
func (s *BoardStore) Publish(b *domain.RankedBoard, comparisons []domain.MarketComparison) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = b
	s.comparisons = comparisons
}

// Snapshot returns the current board and comparisons, or nil if no run
// has completed yet.
func (s *BoardStore) Snapshot() (*domain.RankedBoard, []domain.MarketComparison) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board, s.comparisons
}

// BoardHandler serves board read endpoints.
type BoardHandler struct {
	store        *BoardStore
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(store *BoardStore, logger *slog.Logger) *BoardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardHandler{
		store:        store,
		logger:       logger.With(slog.String("handler", "board")),
		errorHandler: apierrors.NewErrorHandler(logger),
	}
}

// RegisterRoutes registers the board routes.
func (h *BoardHandler) RegisterRoutes(r chi.Router) {
	r.Route("/board", func(r chi.Router) {
		r.Get("/", h.GetBoard)
		r.Get("/insights", h.GetInsights)
		r.Get("/tiers", h.GetTiers)
		r.Get("/positions/{position}", h.GetPosition)
	})
}

// GetBoard returns the full ranked board for the latest run.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	b, _ := h.store.Snapshot()
	if b == nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrBoardNotReady)
		return
	}

	h.logger.InfoContext(r.Context(), "serving board",
		slog.String("run_id", b.RunID),
		slog.Int("entries", len(b.Entries)))

	render.JSON(w, r, b)
}

// GetInsights returns summary insights for the latest board.
func (h *BoardHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	b, _ := h.store.Snapshot()
	if b == nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrBoardNotReady)
		return
	}

	render.JSON(w, r, board.BuildInsights(b))
}

// GetTiers returns the market comparison with value tiers for the latest
// run. Runs executed without a market feed have no tiers.
func (h *BoardHandler) GetTiers(w http.ResponseWriter, r *http.Request) {
	b, comparisons := h.store.Snapshot()
	if b == nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrBoardNotReady)
		return
	}
	if comparisons == nil {
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError("market comparison"))
		return
	}

	render.JSON(w, r, comparisons)
}

// GetPosition returns the board entries for one position in rank order.
func (h *BoardHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	pos := domain.Position(strings.ToUpper(chi.URLParam(r, "position")))
	if !pos.IsValid() {
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusBadRequest,
			"INVALID_PARAMETER",
			"Invalid position. Use: QB, RB, WR, or TE",
		))
		return
	}

	b, _ := h.store.Snapshot()
	if b == nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrBoardNotReady)
		return
	}

	render.JSON(w, r, b.ByPosition(pos))
}

// NewRouter builds the service router with standard middleware and the
// board API mounted under /api.
func NewRouter(store *BoardStore, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	handler := NewBoardHandler(store, logger)
	r.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})

	return r
}
