// Package validation enforces the structural rules on route endpoints before
// they enter the store, and on query endpoints before a search runs.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vanshika/routeplanner/internal/domain"
)

const codeLength = 3

// MaxCost is the largest cost a single edge may carry. Any simple path over a
// realistic network then sums well inside int.
const MaxCost = math.MaxInt32

const (
	edgeSeparator  = ","
	querySeparator = "-"
)

// ValidCode reports whether code is non-empty and made only of letters.
func ValidCode(code string) bool {
	if code == "" {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ValidThreeLetterCode reports whether code is exactly three letters.
func ValidThreeLetterCode(code string) bool {
	return ValidCode(code) && utf8.RuneCountInString(code) == codeLength
}

// NormalizeCode trims and upper-cases a location code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCost rejects negative costs and costs above MaxCost.
func ValidCost(cost int) error {
	if cost < 0 {
		return fmt.Errorf("%w: cost %d is negative", domain.ErrInvalidFormat, cost)
	}
	if cost > MaxCost {
		return fmt.Errorf("%w: cost %d exceeds %d", domain.ErrInvalidFormat, cost, MaxCost)
	}
	return nil
}

// ParseEdgeInput parses an "ORIGIN,DESTINATION,COST" triple. Codes only need to
// be alphabetic here; the three-letter rule is ValidateThreeLetterCodes' job.
func ParseEdgeInput(raw string) (domain.Edge, error) {
	parts := strings.Split(raw, edgeSeparator)
	if len(parts) != 3 {
		return domain.Edge{}, fmt.Errorf("%w: expected 3 fields, got %d", domain.ErrInvalidFormat, len(parts))
	}

	cost, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.Edge{}, fmt.Errorf("%w: cost %q is not an integer", domain.ErrInvalidFormat, parts[2])
	}
	if err := ValidCost(cost); err != nil {
		return domain.Edge{}, err
	}

	origin := NormalizeCode(parts[0])
	destination := NormalizeCode(parts[1])
	if !ValidCode(origin) || !ValidCode(destination) {
		return domain.Edge{}, fmt.Errorf("%w: codes must be alphabetic", domain.ErrInvalidFormat)
	}

	return domain.Edge{Origin: origin, Destination: destination, Cost: cost}, nil
}

// ParseQueryInput parses an "ORIGIN-DESTINATION" pair. Whether the codes exist
// in the route set is checked separately by CheckEndpointsExist.
func ParseQueryInput(raw string) (string, string, error) {
	parts := strings.Split(raw, querySeparator)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: expected 2 fields, got %d", domain.ErrInvalidFormat, len(parts))
	}

	origin := NormalizeCode(parts[0])
	destination := NormalizeCode(parts[1])
	if !ValidCode(origin) || !ValidCode(destination) {
		return "", "", fmt.Errorf("%w: codes must be alphabetic", domain.ErrInvalidFormat)
	}
	return origin, destination, nil
}

// ValidateThreeLetterCodes applies the registration rules and reports every
// violation together rather than stopping at the first one.
func ValidateThreeLetterCodes(origin, destination string) error {
	var verr domain.ValidationError

	if !ValidThreeLetterCode(origin) {
		verr.Add(domain.FieldOrigin, origin, domain.ErrInvalidCode)
	}
	if !ValidThreeLetterCode(destination) {
		verr.Add(domain.FieldDestination, destination, domain.ErrInvalidCode)
	}
	if strings.EqualFold(origin, destination) {
		verr.Add(domain.FieldBoth, origin, domain.ErrSameEndpoint)
	}

	return verr.AsError()
}

// CheckEndpointsExist verifies that origin appears as the origin of some edge
// and destination as the destination of some edge. Columns are never mixed,
// and reachability is left to the path finder.
func CheckEndpointsExist(edges []domain.Edge, origin, destination string) error {
	originExists := false
	destinationExists := false
	for _, e := range edges {
		if e.Origin == origin {
			originExists = true
		}
		if e.Destination == destination {
			destinationExists = true
		}
		if originExists && destinationExists {
			return nil
		}
	}

	return &domain.MissingEndpointError{
		Origin:             origin,
		Destination:        destination,
		OriginMissing:      !originExists,
		DestinationMissing: !destinationExists,
	}
}
