package domain

import "fmt"

// Edge models a directed, costed route between two location codes.
type Edge struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Cost        int    `json:"cost"`
}

// SameEndpoints reports whether the edge connects the given pair in the same direction.
func (e Edge) SameEndpoints(origin, destination string) bool {
	return e.Origin == origin && e.Destination == destination
}

// String renders the edge the way route listings display it.
func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s, Cost: $%d", e.Origin, e.Destination, e.Cost)
}
