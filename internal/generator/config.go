package generator

// Config drives the synthetic route network generator.
type Config struct {
	Locations int
	Routes    int
	MaxCost   int
	// ChainChance is the probability that a route starts where the previous
	// one ended, which produces longer multi-hop paths.
	ChainChance float64
	Seed        int64
}

// DefaultConfig returns a small network that still exercises multi-hop search.
func DefaultConfig() Config {
	return Config{
		Locations:   12,
		Routes:      30,
		MaxCost:     100,
		ChainChance: 0.4,
		Seed:        42,
	}
}
