package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/routeplanner/internal/domain"
	"github.com/vanshika/routeplanner/internal/logging"
	"github.com/vanshika/routeplanner/internal/repository"
	"github.com/vanshika/routeplanner/internal/service"
)

func runConsole(t *testing.T, svc RouteService, input ...string) string {
	t.Helper()
	var out bytes.Buffer
	err := New(svc, strings.NewReader(strings.Join(input, "\n")+"\n"), &out).Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func newService(edges ...domain.Edge) *service.RouteService {
	return service.NewRouteService(repository.NewMemoryStore(edges...), logging.Discard())
}

func TestConsoleRegistersAndQueries(t *testing.T) {
	svc := newService()

	out := runConsole(t, svc,
		OptionRegister, "GRU,BRC,10",
		OptionRegister, "BRC,CDG,5",
		OptionRegister, "GRU,CDG,75",
		OptionQuery, "GRU-CDG",
		OptionExit,
	)

	assert.Equal(t, 3, strings.Count(out, "Route registered successfully!"))
	assert.Contains(t, out, "Available routes:")
	assert.Contains(t, out, "GRU -> BRC, Cost: $10")
	assert.Contains(t, out, "Best route: GRU - BRC - CDG at a cost of $15")
	assert.Contains(t, out, "Exiting...")
}

func TestConsoleReportsErrorsAndKeepsRunning(t *testing.T) {
	svc := newService(domain.Edge{Origin: "GRU", Destination: "BRC", Cost: 10})

	out := runConsole(t, svc,
		"9",
		OptionRegister, "",
		OptionRegister, "GRU;BRC;10",
		OptionRegister, "GRU,BRC,20",
		OptionRegister, "GRUU,GR,1",
		OptionQuery, "GRU-CDG",
		OptionQuery, "GRUCDG",
		OptionExit,
	)

	assert.Contains(t, out, "Invalid option! Try again.")
	assert.Contains(t, out, "Invalid format! Input cannot be empty.")
	assert.Contains(t, out, "Invalid format! Use the format Origin,Destination,Cost.")
	assert.Contains(t, out, "The route already exists! Duplicates cannot be added.")
	assert.Contains(t, out, "Error(s):")
	assert.Contains(t, out, "Origin 'GRUU' is invalid. It must contain exactly 3 letters.")
	assert.Contains(t, out, "Destination 'GR' is invalid. It must contain exactly 3 letters.")
	assert.Contains(t, out, "Error: the destination 'CDG' does not exist in the available routes.")
	assert.Contains(t, out, "Invalid format! Use the format Origin-Destination.")
}

func TestConsoleQueryOnEmptyStore(t *testing.T) {
	out := runConsole(t, newService(), OptionQuery, OptionExit)
	assert.Contains(t, out, "There are no routes available to query.")
	assert.NotContains(t, out, "Enter the route in the format Origin-Destination")
	assert.NotContains(t, out, "Invalid option!")
}

func TestConsoleExitsCleanlyOnEOF(t *testing.T) {
	var out bytes.Buffer
	err := New(newService(), strings.NewReader(OptionRegister+"\n"), &out).Run(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Route registered successfully!")
}

func TestConsoleStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(newService(), strings.NewReader(OptionExit+"\n"), &out).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

type failingService struct{ err error }

func (f failingService) RegisterRoute(context.Context, string) (domain.Edge, error) {
	return domain.Edge{}, f.err
}

func (f failingService) QueryBestRoute(context.Context, string) (domain.Path, error) {
	return domain.Path{}, f.err
}

func (f failingService) ListRoutes(context.Context) ([]domain.Edge, error) {
	return nil, nil
}

func TestConsoleReturnsInternalErrors(t *testing.T) {
	storeErr := errors.New("store offline")

	var out bytes.Buffer
	err := New(failingService{err: storeErr}, strings.NewReader("1\nGRU,BRC,10\n3\n"), &out).Run(context.Background())
	require.ErrorIs(t, err, storeErr)
}
