package server

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vanshika/routeplanner/internal/domain"
	"github.com/vanshika/routeplanner/internal/repository"
	"github.com/vanshika/routeplanner/internal/service"
)

// RouteService is the service surface the API needs.
type RouteService interface {
	RegisterRoute(ctx context.Context, raw string) (domain.Edge, error)
	RegisterEdge(ctx context.Context, edge domain.Edge) (domain.Edge, error)
	QueryBestRoute(ctx context.Context, raw string) (domain.Path, error)
	ListRoutes(ctx context.Context) ([]domain.Edge, error)
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service RouteService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc RouteService) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

func (h *APIHandlers) handleRoutes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createRoute(w, r)
	case http.MethodGet:
		h.listRoutes(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *APIHandlers) createRoute(w http.ResponseWriter, r *http.Request) {
	var payload routeRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		edge domain.Edge
		err  error
	)
	if payload.Route != "" {
		edge, err = h.service.RegisterRoute(r.Context(), payload.Route)
	} else {
		if payload.Cost == nil {
			writeError(w, http.StatusBadRequest, "either route or origin, destination and cost are required")
			return
		}
		edge, err = h.service.RegisterEdge(r.Context(), domain.Edge{
			Origin:      payload.Origin,
			Destination: payload.Destination,
			Cost:        *payload.Cost,
		})
	}
	if err != nil {
		h.writeServiceError(w, r, service.OpRegister, err)
		return
	}

	respondJSON(w, http.StatusCreated, toRouteResponse(edge))
}

func (h *APIHandlers) listRoutes(w http.ResponseWriter, r *http.Request) {
	edges, err := h.service.ListRoutes(r.Context())
	if err != nil {
		h.writeServiceError(w, r, service.OpQuery, err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "csv") {
		writeRoutesCSV(w, edges)
		return
	}

	resp := listRoutesResponse{Items: make([]routeResponse, 0, len(edges)), Total: len(edges)}
	for _, edge := range edges {
		resp.Items = append(resp.Items, toRouteResponse(edge))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleBestRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	query := r.URL.Query()
	raw := query.Get("query")
	if raw == "" && (query.Get("origin") != "" || query.Get("destination") != "") {
		raw = query.Get("origin") + "-" + query.Get("destination")
	}

	path, err := h.service.QueryBestRoute(r.Context(), raw)
	if err != nil {
		h.writeServiceError(w, r, service.OpQuery, err)
		return
	}

	respondJSON(w, http.StatusOK, bestRouteResponse{
		Codes:     path.Codes,
		Cost:      path.Cost,
		Hops:      path.Hops(),
		Formatted: path.String(),
	})
}

func (h *APIHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, op service.Operation, err error) {
	category := domain.Category(err)
	status := statusForCategory(category)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "route request failed", "error", err, "path", r.URL.Path)
		writeError(w, status, "internal error")
		return
	}
	respondJSON(w, status, errorResponse{Error: service.Describe(op, err), Category: category})
}

func statusForCategory(category string) int {
	switch category {
	case domain.CategoryInvalidFormat, domain.CategoryInvalidCode, domain.CategorySameEndpoint:
		return http.StatusBadRequest
	case domain.CategoryDuplicate:
		return http.StatusConflict
	case domain.CategoryEndpointNotFound, domain.CategoryNoPath:
		return http.StatusNotFound
	case domain.CategoryNoRoutes:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeRoutesCSV(w http.ResponseWriter, edges []domain.Edge) {
	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)

	writer := csv.NewWriter(w)
	_ = writer.Write(strings.Split(repository.RecordHeader, ","))
	for _, edge := range edges {
		_ = writer.Write([]string{edge.Origin, edge.Destination, strconv.Itoa(edge.Cost)})
	}
	writer.Flush()
}

// --- Request & Response DTOs ---

type routeRequest struct {
	Route       string `json:"route"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Cost        *int   `json:"cost"`
}

type routeResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Cost        int    `json:"cost"`
	Display     string `json:"display"`
}

type listRoutesResponse struct {
	Items []routeResponse `json:"items"`
	Total int             `json:"total"`
}

type bestRouteResponse struct {
	Codes     []string `json:"codes"`
	Cost      int      `json:"cost"`
	Hops      int      `json:"hops"`
	Formatted string   `json:"formatted"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category,omitempty"`
}

func toRouteResponse(edge domain.Edge) routeResponse {
	return routeResponse{
		Origin:      edge.Origin,
		Destination: edge.Destination,
		Cost:        edge.Cost,
		Display:     edge.String(),
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
