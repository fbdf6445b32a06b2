package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vanshika/routeplanner/internal/domain"
	"github.com/vanshika/routeplanner/internal/graph"
)

// GraphStore persists routes as (:Location)-[:ROUTE]->(:Location) relationships.
// Each relationship carries a seq drawn from a counter node in the same write,
// which LoadAll orders by.
type GraphStore struct {
	client graph.Client
	logger *slog.Logger
}

// NewGraphStore instantiates a GraphStore backed by the supplied graph client.
func NewGraphStore(client graph.Client, logger *slog.Logger) *GraphStore {
	return &GraphStore{client: client, logger: logger.With("store", "neo4j")}
}

func (s *GraphStore) Append(ctx context.Context, edge domain.Edge) error {
	params := map[string]any{
		"origin":      edge.Origin,
		"destination": edge.Destination,
		"cost":        int64(edge.Cost),
	}
	if _, err := s.client.ExecuteWrite(ctx, appendRouteCypher, params); err != nil {
		return fmt.Errorf("append route %s->%s: %w", edge.Origin, edge.Destination, err)
	}
	return nil
}

func (s *GraphStore) LoadAll(ctx context.Context) ([]domain.Edge, error) {
	res, err := s.client.ExecuteRead(ctx, loadRoutesCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("load routes query: %w", err)
	}

	edges := make([]domain.Edge, 0, len(res.Records))
	for i, record := range res.Records {
		edge, err := recordToEdge(record)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping malformed route record", "index", i, "error", err)
			continue
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

func (s *GraphStore) Ping(ctx context.Context) error {
	return s.client.VerifyConnectivity(ctx)
}

func (s *GraphStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func recordToEdge(record graph.Record) (domain.Edge, error) {
	origin, ok := record["origin"].(string)
	if !ok || origin == "" {
		return domain.Edge{}, fmt.Errorf("%w: origin %v", ErrMalformedRecord, record["origin"])
	}
	destination, ok := record["destination"].(string)
	if !ok || destination == "" {
		return domain.Edge{}, fmt.Errorf("%w: destination %v", ErrMalformedRecord, record["destination"])
	}
	cost, ok := toInt(record["cost"])
	if !ok {
		return domain.Edge{}, fmt.Errorf("%w: cost %v", ErrMalformedRecord, record["cost"])
	}
	return domain.Edge{Origin: origin, Destination: destination, Cost: cost}, nil
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int64:
		return int(v), true
	case int:
		return v, true
	case int32:
		return int(v), true
	default:
		return 0, false
	}
}

const appendRouteCypher = `
MERGE (counter:RouteSequence {name: 'routes'})
  ON CREATE SET counter.value = 0
SET counter.value = counter.value + 1
WITH counter.value AS seq
MERGE (o:Location {code: $origin})
MERGE (d:Location {code: $destination})
CREATE (o)-[r:ROUTE {cost: $cost, seq: seq}]->(d)
RETURN seq
`

const loadRoutesCypher = `
MATCH (o:Location)-[r:ROUTE]->(d:Location)
RETURN o.code AS origin, d.code AS destination, r.cost AS cost, r.seq AS seq
ORDER BY r.seq ASC
`
