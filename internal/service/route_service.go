package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanshika/routeplanner/internal/domain"
	"github.com/vanshika/routeplanner/internal/metrics"
	"github.com/vanshika/routeplanner/internal/observability"
	"github.com/vanshika/routeplanner/internal/pathfinder"
	"github.com/vanshika/routeplanner/internal/validation"
)

// RouteStore is the storage contract required by the route service.
type RouteStore interface {
	Append(ctx context.Context, edge domain.Edge) error
	LoadAll(ctx context.Context) ([]domain.Edge, error)
}

// RouteService glues validation, existence checks, and the path finder into
// route registration and best-route queries.
//
// Registration holds the write lock across the duplicate check and the append,
// so two registrations of the same pair cannot both succeed. Queries hold the
// read lock and see a consistent snapshot of the store.
type RouteService struct {
	mu      sync.RWMutex
	store   RouteStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// NewRouteService constructs a RouteService over store.
func NewRouteService(store RouteStore, logger *slog.Logger) *RouteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RouteService{
		store:  store,
		logger: logger,
		tracer: observability.Tracer(),
	}
}

// WithMetrics enables Prometheus instrumentation.
func (s *RouteService) WithMetrics(m *metrics.Metrics) *RouteService {
	s.metrics = m
	return s
}

// WithTracer overrides the tracer (used primarily in tests).
func (s *RouteService) WithTracer(t trace.Tracer) *RouteService {
	if t != nil {
		s.tracer = t
	}
	return s
}

// RegisterRoute parses an "ORIGIN,DESTINATION,COST" line and stores the route.
func (s *RouteService) RegisterRoute(ctx context.Context, raw string) (edge domain.Edge, err error) {
	ctx, span := s.tracer.Start(ctx, "route.register")
	defer func() {
		s.endSpan(span, err)
		s.metrics.Registration(domain.Category(err))
	}()

	if strings.TrimSpace(raw) == "" {
		return domain.Edge{}, domain.ErrEmptyInput
	}
	edge, err = validation.ParseEdgeInput(raw)
	if err != nil {
		return domain.Edge{}, err
	}
	span.SetAttributes(attribute.String("route.origin", edge.Origin), attribute.String("route.destination", edge.Destination))

	if err := s.register(ctx, edge); err != nil {
		return domain.Edge{}, err
	}
	return edge, nil
}

// RegisterEdge stores an already-parsed edge after the registration rules and
// the duplicate check. It returns the edge as stored.
func (s *RouteService) RegisterEdge(ctx context.Context, edge domain.Edge) (_ domain.Edge, err error) {
	defer func() { s.metrics.Registration(domain.Category(err)) }()

	edge.Origin = validation.NormalizeCode(edge.Origin)
	edge.Destination = validation.NormalizeCode(edge.Destination)
	if err := validation.ValidCost(edge.Cost); err != nil {
		return domain.Edge{}, err
	}
	if err := s.register(ctx, edge); err != nil {
		return domain.Edge{}, err
	}
	return edge, nil
}

func (s *RouteService) register(ctx context.Context, edge domain.Edge) error {
	if err := validation.ValidateThreeLetterCodes(edge.Origin, edge.Destination); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	edges, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load routes: %w", err)
	}
	for _, existing := range edges {
		if existing.SameEndpoints(edge.Origin, edge.Destination) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrDuplicateEdge, edge.Origin, edge.Destination)
		}
	}

	if err := s.store.Append(ctx, edge); err != nil {
		return fmt.Errorf("store route: %w", err)
	}

	s.metrics.StoredRoutes(len(edges) + 1)
	s.logger.InfoContext(ctx, "route registered",
		"origin", edge.Origin,
		"destination", edge.Destination,
		"cost", edge.Cost,
	)
	return nil
}

// QueryBestRoute parses an "ORIGIN-DESTINATION" pair and returns the cheapest
// path. The store must hold at least one route, and the origin and destination
// must each appear in their own column of the route set.
func (s *RouteService) QueryBestRoute(ctx context.Context, raw string) (path domain.Path, err error) {
	ctx, span := s.tracer.Start(ctx, "route.query")
	defer func() {
		s.endSpan(span, err)
		s.metrics.Query(domain.Category(err))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	edges, err := s.store.LoadAll(ctx)
	if err != nil {
		return domain.Path{}, fmt.Errorf("load routes: %w", err)
	}
	s.metrics.StoredRoutes(len(edges))
	if len(edges) == 0 {
		return domain.Path{}, domain.ErrNoRoutes
	}

	if strings.TrimSpace(raw) == "" {
		return domain.Path{}, domain.ErrEmptyInput
	}
	origin, destination, err := validation.ParseQueryInput(raw)
	if err != nil {
		return domain.Path{}, err
	}
	span.SetAttributes(attribute.String("route.origin", origin), attribute.String("route.destination", destination))

	if err := validation.CheckEndpointsExist(edges, origin, destination); err != nil {
		return domain.Path{}, err
	}

	return s.search(ctx, edges, origin, destination)
}

// FindBestRoute runs the path search between two codes without the format and
// existence checks of QueryBestRoute.
func (s *RouteService) FindBestRoute(ctx context.Context, origin, destination string) (domain.Path, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges, err := s.store.LoadAll(ctx)
	if err != nil {
		return domain.Path{}, fmt.Errorf("load routes: %w", err)
	}
	return s.search(ctx, edges, validation.NormalizeCode(origin), validation.NormalizeCode(destination))
}

func (s *RouteService) search(ctx context.Context, edges []domain.Edge, origin, destination string) (domain.Path, error) {
	start := time.Now()
	path, err := pathfinder.FindCheapestPath(edges, origin, destination)
	elapsed := time.Since(start)
	s.metrics.ObserveSearch(elapsed)

	s.logger.DebugContext(ctx, "path search finished",
		"origin", origin,
		"destination", destination,
		"routes", len(edges),
		"found", err == nil,
		"duration", elapsed.String(),
	)
	return path, err
}

// ListRoutes returns every stored route in store order.
func (s *RouteService) ListRoutes(ctx context.Context) ([]domain.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	return edges, nil
}

func (s *RouteService) endSpan(span trace.Span, err error) {
	category := domain.Category(err)
	span.SetAttributes(attribute.String("route.outcome", category))
	if category == domain.CategoryInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
