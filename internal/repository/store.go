// Package repository persists routes. Every backend keeps routes in append
// order, since the path finder's tie-break depends on enumeration order.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vanshika/routeplanner/internal/domain"
)

// Store is the persistence contract the route service depends on.
type Store interface {
	// Append durably records edge or returns an error.
	Append(ctx context.Context, edge domain.Edge) error
	// LoadAll returns every stored edge in append order. Malformed records
	// are skipped with a diagnostic rather than failing the load.
	LoadAll(ctx context.Context) ([]domain.Edge, error)
	Close(ctx context.Context) error
}

// Pinger is implemented by stores whose backing medium can be probed for health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrMalformedRecord marks a persisted record that cannot be decoded.
var ErrMalformedRecord = errors.New("malformed route record")

// RecordHeader is the first line of a routes file.
const RecordHeader = "origin,destination,cost"

// EncodeRecord renders an edge in the line-delimited text format.
func EncodeRecord(edge domain.Edge) string {
	return fmt.Sprintf("%s,%s,%d", edge.Origin, edge.Destination, edge.Cost)
}

// DecodeRecord parses one line of the text format.
func DecodeRecord(line string) (domain.Edge, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 3 {
		return domain.Edge{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformedRecord, len(parts))
	}
	cost, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.Edge{}, fmt.Errorf("%w: cost %q: %v", ErrMalformedRecord, parts[2], err)
	}
	return domain.Edge{
		Origin:      strings.TrimSpace(parts[0]),
		Destination: strings.TrimSpace(parts[1]),
		Cost:        cost,
	}, nil
}

// IsHeader reports whether line is the routes file header.
func IsHeader(line string) bool {
	return strings.EqualFold(strings.ReplaceAll(strings.TrimSpace(line), " ", ""), RecordHeader)
}
