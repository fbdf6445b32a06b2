// Package generator synthesises random route networks for demos and load tests.
package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/vanshika/routeplanner/internal/domain"
)

const (
	alphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	maxLocations = len(alphabet) * len(alphabet) * len(alphabet)
)

// Network is a generated set of location codes and the routes between them.
type Network struct {
	Locations []string      `json:"locations"`
	Routes    []domain.Edge `json:"routes"`
}

// Generator produces networks that satisfy the route registration rules:
// three-letter codes, no self loops, and no duplicate origin/destination pairs.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	defaults := DefaultConfig()
	if cfg.Locations < 2 {
		cfg.Locations = defaults.Locations
	}
	if cfg.Locations > maxLocations {
		cfg.Locations = maxLocations
	}
	if cfg.Routes <= 0 {
		cfg.Routes = defaults.Routes
	}
	if maxRoutes := cfg.Locations * (cfg.Locations - 1); cfg.Routes > maxRoutes {
		cfg.Routes = maxRoutes
	}
	if cfg.MaxCost <= 0 {
		cfg.MaxCost = defaults.MaxCost
	}
	cfg.ChainChance = clampProbability(cfg.ChainChance)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Config returns the effective configuration after defaults and clamping.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate synthesises a network. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Network, error) {
	locations, err := g.locations(ctx)
	if err != nil {
		return Network{}, err
	}

	// Dense networks are drawn from a shuffled enumeration of every pair.
	var routes []domain.Edge
	if g.cfg.Routes*2 > len(locations)*(len(locations)-1) {
		routes, err = g.denseRoutes(ctx, locations)
	} else {
		routes, err = g.sparseRoutes(ctx, locations)
	}
	if err != nil {
		return Network{}, err
	}

	return Network{Locations: locations, Routes: routes}, nil
}

func (g *Generator) locations(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{}, g.cfg.Locations)
	codes := make([]string, 0, g.cfg.Locations)

	if g.cfg.Locations*2 > maxLocations {
		for _, idx := range g.rand.Perm(maxLocations)[:g.cfg.Locations] {
			codes = append(codes, codeAt(idx))
		}
		return codes, nil
	}

	for len(codes) < g.cfg.Locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		code := g.randomCode()
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

func (g *Generator) sparseRoutes(ctx context.Context, locations []string) ([]domain.Edge, error) {
	type pair struct{ origin, destination string }
	seen := make(map[pair]struct{}, g.cfg.Routes)
	outDegree := make(map[string]int, len(locations))
	routes := make([]domain.Edge, 0, g.cfg.Routes)

	for len(routes) < g.cfg.Routes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		origin := locations[g.rand.Intn(len(locations))]
		if len(routes) > 0 && g.rand.Float64() < g.cfg.ChainChance {
			if last := routes[len(routes)-1].Destination; outDegree[last] < len(locations)-1 {
				origin = last
			}
		}
		destination := locations[g.rand.Intn(len(locations))]
		if destination == origin {
			continue
		}

		key := pair{origin, destination}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		outDegree[origin]++
		routes = append(routes, domain.Edge{Origin: origin, Destination: destination, Cost: g.randomCost()})
	}
	return routes, nil
}

func (g *Generator) denseRoutes(ctx context.Context, locations []string) ([]domain.Edge, error) {
	all := make([]domain.Edge, 0, len(locations)*(len(locations)-1))
	for _, origin := range locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, destination := range locations {
			if origin != destination {
				all = append(all, domain.Edge{Origin: origin, Destination: destination})
			}
		}
	}

	g.rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	routes := all[:g.cfg.Routes]
	for i := range routes {
		routes[i].Cost = g.randomCost()
	}
	return routes, nil
}

func (g *Generator) randomCode() string {
	return codeAt(g.rand.Intn(maxLocations))
}

func (g *Generator) randomCost() int {
	return 1 + g.rand.Intn(g.cfg.MaxCost)
}

func codeAt(idx int) string {
	n := len(alphabet)
	return string([]byte{alphabet[idx/(n*n)], alphabet[(idx/n)%n], alphabet[idx%n]})
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
