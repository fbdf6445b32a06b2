// Package pathfinder finds the cheapest cycle-free route between two location
// codes by exhaustively enumerating every simple path.
//
// The search is exponential in the worst case. Route networks entered by an
// operator are small, and the enumeration gives a precise tie-break: among
// paths of equal cost, the first one reached in store order wins.
package pathfinder

import (
	"fmt"
	"math"
	"slices"

	"github.com/vanshika/routeplanner/internal/domain"
)

// branch is the outcome of exploring one partial path.
type branch struct {
	codes []string
	cost  int
}

type search struct {
	destination string
	outgoing    map[string][]domain.Edge
}

// FindCheapestPath returns the minimum-cost path from origin to destination
// over edges, or domain.ErrNoPathFound when no branch reaches the destination.
// Outgoing edges are explored in the order they appear in edges.
func FindCheapestPath(edges []domain.Edge, origin, destination string) (domain.Path, error) {
	s := search{
		destination: destination,
		outgoing:    indexByOrigin(edges),
	}

	best, found := s.explore(origin, 0, nil)
	if !found {
		return domain.Path{}, fmt.Errorf("%w: %s to %s", domain.ErrNoPathFound, origin, destination)
	}
	return domain.Path{Codes: best.codes, Cost: best.cost}, nil
}

// explore returns the cheapest branch from current to the destination given the
// codes already visited. found is false when the branch cannot reach it.
func (s search) explore(current string, cost int, visited []string) (branch, bool) {
	if slices.Contains(visited, current) {
		return branch{}, false
	}

	path := make([]string, len(visited), len(visited)+1)
	copy(path, visited)
	path = append(path, current)

	if current == s.destination {
		return branch{codes: path, cost: cost}, true
	}

	var (
		best  branch
		found bool
	)
	for _, edge := range s.outgoing[current] {
		// A total that would overflow int can never be the cheapest.
		if edge.Cost > math.MaxInt-cost {
			continue
		}
		candidate, ok := s.explore(edge.Destination, cost+edge.Cost, path)
		if !ok {
			continue
		}
		// Strictly cheaper only: equal-cost branches keep the first one found.
		if !found || candidate.cost < best.cost {
			best, found = candidate, true
		}
	}
	return best, found
}

func indexByOrigin(edges []domain.Edge) map[string][]domain.Edge {
	out := make(map[string][]domain.Edge)
	for _, e := range edges {
		out[e.Origin] = append(out[e.Origin], e)
	}
	return out
}
