package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const (
	maxBodyBytes = 1 << 20
	dateLayout   = "2006-01-02"
)

// Simulator runs one impact scenario end to end.
type Simulator interface {
	Simulate(ctx context.Context, req domain.ScenarioRequest) (domain.ImpactReport, error)
}

// API serves the /api/v1 impact and catalog routes.
type API struct {
	simulator Simulator
	catalog   domain.Catalog
	logger    *slog.Logger
}

// NewAPI creates the API handlers. A nil catalog makes the /neo routes
// answer 503.
func NewAPI(simulator Simulator, catalog domain.Catalog, logger *slog.Logger) *API {
	return &API{simulator: simulator, catalog: catalog, logger: logger}
}

// Register mounts the API routes on mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/impacts", a.handleSimulate)
	mux.HandleFunc("GET /api/v1/neo/feed", a.handleFeed)
	mux.HandleFunc("GET /api/v1/neo/{id}", a.handleLookup)
}

type errorResponse struct {
	Error      string                  `json:"error"`
	Violations []domain.FieldViolation `json:"violations,omitempty"`
}

type neoResponse struct {
	NEO    domain.NearEarthObject `json:"neo"`
	Params domain.ImpactParams    `json:"params"`
}

type feedResponse struct {
	StartDate string                   `json:"start_date"`
	EndDate   string                   `json:"end_date"`
	Count     int                      `json:"count"`
	Asteroids []domain.AsteroidSummary `json:"asteroids"`
}

func (a *API) handleSimulate(w http.ResponseWriter, r *http.Request) {
	req := domain.DefaultScenarioRequest()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	req.RequestedAt = domain.Now()

	report, err := a.simulator.Simulate(r.Context(), req)
	if err != nil {
		var ipe *domain.InvalidParameterError
		if errors.As(err, &ipe) {
			sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{
				Error:      domain.ErrInvalidParameter.Error(),
				Violations: ipe.Violations,
			})
			return
		}
		a.logger.Error("simulate scenario failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "simulation failed"})
		return
	}

	sharedobs.WriteJSON(w, http.StatusOK, report)
}

func (a *API) handleLookup(w http.ResponseWriter, r *http.Request) {
	if a.catalog == nil {
		writeCatalogDisabled(w)
		return
	}

	id := r.PathValue("id")
	neo, err := a.catalog.LookupNEO(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNEONotFound):
		sharedobs.WriteJSON(w, http.StatusNotFound, errorResponse{Error: "near-earth object " + id + " not found"})
		return
	case err != nil:
		a.logger.Warn("catalog lookup failed", "neo_id", id, "error", err)
		sharedobs.WriteJSON(w, http.StatusBadGateway, errorResponse{Error: "catalog unavailable"})
		return
	}

	sharedobs.WriteJSON(w, http.StatusOK, neoResponse{
		NEO:    neo,
		Params: domain.ParamsFromNEO(domain.DefaultImpactParams(), neo),
	})
}

func (a *API) handleFeed(w http.ResponseWriter, r *http.Request) {
	start := domain.Now().UTC().Truncate(24 * time.Hour)
	if s := r.URL.Query().Get("start_date"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "start_date must be YYYY-MM-DD"})
			return
		}
		start = parsed
	}

	limit := domain.DefaultFeedLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	if a.catalog == nil {
		writeCatalogDisabled(w)
		return
	}

	end := start.Add(domain.FeedWindow)
	neos, err := a.catalog.Feed(r.Context(), start, end)
	if err != nil {
		a.logger.Warn("catalog feed failed", "start_date", start.Format(dateLayout), "error", err)
		sharedobs.WriteJSON(w, http.StatusBadGateway, errorResponse{Error: "catalog unavailable"})
		return
	}

	summaries := domain.SummarizeFeed(neos, limit)
	sharedobs.WriteJSON(w, http.StatusOK, feedResponse{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Count:     len(summaries),
		Asteroids: summaries,
	})
}

func writeCatalogDisabled(w http.ResponseWriter) {
	sharedobs.WriteJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "catalog disabled"})
}
