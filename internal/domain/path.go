package domain

import (
	"fmt"
	"strings"
)

// Path is an ordered, cycle-free sequence of codes from a query origin to its destination.
type Path struct {
	Codes []string `json:"codes"`
	Cost  int      `json:"cost"`
}

// Origin returns the first code of the path, or an empty string for an empty path.
func (p Path) Origin() string {
	if len(p.Codes) == 0 {
		return ""
	}
	return p.Codes[0]
}

// Destination returns the last code of the path.
func (p Path) Destination() string {
	if len(p.Codes) == 0 {
		return ""
	}
	return p.Codes[len(p.Codes)-1]
}

// Hops is the number of edges traversed.
func (p Path) Hops() int {
	if len(p.Codes) == 0 {
		return 0
	}
	return len(p.Codes) - 1
}

func (p Path) String() string {
	return fmt.Sprintf("%s at a cost of $%d", strings.Join(p.Codes, " - "), p.Cost)
}
