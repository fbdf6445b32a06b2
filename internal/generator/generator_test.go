package generator

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/routeplanner/internal/domain"
	"github.com/vanshika/routeplanner/internal/logging"
	"github.com/vanshika/routeplanner/internal/repository"
	"github.com/vanshika/routeplanner/internal/validation"
)

func TestGenerateProducesRegistrableNetwork(t *testing.T) {
	cfg := Config{Locations: 20, Routes: 60, MaxCost: 50, ChainChance: 0.5, Seed: 7}
	network, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	require.Len(t, network.Locations, 20)
	require.Len(t, network.Routes, 60)
	assertValidNetwork(t, network, 50)
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	cfg := Config{Locations: 15, Routes: 40, MaxCost: 30, ChainChance: 0.3, Seed: 99}

	first, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)
	second, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateDenseNetwork(t *testing.T) {
	network, err := New(Config{Locations: 4, Routes: 100, MaxCost: 5, Seed: 3}).Generate(context.Background())
	require.NoError(t, err)

	// Clamped to every ordered pair of distinct locations.
	require.Len(t, network.Routes, 12)
	assertValidNetwork(t, network, 5)
}

func TestGenerateAlwaysChainingTerminates(t *testing.T) {
	network, err := New(Config{Locations: 3, Routes: 3, MaxCost: 9, ChainChance: 1, Seed: 11}).Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, network.Routes, 3)
}

func TestGenerateAppliesDefaults(t *testing.T) {
	g := New(Config{Seed: 1})
	cfg := g.Config()
	assert.Equal(t, DefaultConfig().Locations, cfg.Locations)
	assert.Equal(t, DefaultConfig().Routes, cfg.Routes)
	assert.Equal(t, DefaultConfig().MaxCost, cfg.MaxCost)
}

func TestGenerateRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Locations: 10, Routes: 20, Seed: 5}).Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteRoutesRoundTripsThroughFileStore(t *testing.T) {
	network, err := New(Config{Locations: 8, Routes: 20, Seed: 21}).Generate(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "routes.txt")
	require.NoError(t, WriteRoutesFile(path, network.Routes))

	store := repository.NewFileStore(path, false, logging.Discard())
	loaded, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, network.Routes, loaded)
}

func TestWriteRoutesFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRoutes(&buf, []domain.Edge{
		{Origin: "GRU", Destination: "BRC", Cost: 10},
		{Origin: "BRC", Destination: "CDG", Cost: 5},
	}))
	assert.Equal(t, "origin,destination,cost\nGRU,BRC,10\nBRC,CDG,5\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Network{
		Locations: []string{"GRU", "BRC"},
		Routes:    []domain.Edge{{Origin: "GRU", Destination: "BRC", Cost: 10}},
	}))
	assert.True(t, strings.Contains(buf.String(), `"origin": "GRU"`))
}

func assertValidNetwork(t *testing.T, network Network, maxCost int) {
	t.Helper()

	codes := make(map[string]struct{}, len(network.Locations))
	for _, code := range network.Locations {
		require.True(t, validation.ValidThreeLetterCode(code), code)
		_, dup := codes[code]
		require.False(t, dup, "duplicate location %s", code)
		codes[code] = struct{}{}
	}

	pairs := make(map[[2]string]struct{}, len(network.Routes))
	for _, route := range network.Routes {
		require.NoError(t, validation.ValidateThreeLetterCodes(route.Origin, route.Destination))
		require.Contains(t, codes, route.Origin)
		require.Contains(t, codes, route.Destination)
		require.GreaterOrEqual(t, route.Cost, 1)
		require.LessOrEqual(t, route.Cost, maxCost)

		key := [2]string{route.Origin, route.Destination}
		_, dup := pairs[key]
		require.False(t, dup, "duplicate route %s", route)
		pairs[key] = struct{}{}
	}
}

type failingCloser struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndCloseReportsCloseError(t *testing.T) {
	errDiskFull := errors.New("disk full")
	wc := &failingCloser{closeErr: errDiskFull}

	err := writeAndClose("routes.txt", wc, []domain.Edge{{Origin: "GRU", Destination: "BRC", Cost: 10}})
	require.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, err.Error(), "close routes.txt")
	assert.True(t, wc.closed)
	assert.Equal(t, "origin,destination,cost\nGRU,BRC,10\n", wc.String())
}

func TestWriteAndCloseSucceeds(t *testing.T) {
	wc := &failingCloser{}
	require.NoError(t, writeAndClose("routes.txt", wc, nil))
	assert.True(t, wc.closed)
}
