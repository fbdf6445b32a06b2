package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/routeplanner/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var sampleRoutes = []domain.Edge{
	{Origin: "GRU", Destination: "BRC", Cost: 10},
	{Origin: "BRC", Destination: "SCL", Cost: 5},
	{Origin: "GRU", Destination: "CDG", Cost: 75},
	{Origin: "GRU", Destination: "SCL", Cost: 20},
	{Origin: "GRU", Destination: "ORL", Cost: 56},
	{Origin: "ORL", Destination: "CDG", Cost: 5},
	{Origin: "SCL", Destination: "ORL", Cost: 20},
}

// exerciseStore checks the behaviour every backend must share.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	edges, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, edges)

	for _, e := range sampleRoutes {
		require.NoError(t, store.Append(ctx, e))
	}

	first, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRoutes, first, "routes must come back in append order")

	second, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseStore(t, store)
	assert.Equal(t, len(sampleRoutes), store.Len())
}

func TestMemoryStore_LoadAllReturnsCopy(t *testing.T) {
	store := NewMemoryStore(sampleRoutes[0])
	edges, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	edges[0].Cost = 999

	again, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, again[0].Cost)
}

func TestDecodeRecord(t *testing.T) {
	edge, err := DecodeRecord("GRU,BRC,10\r")
	require.NoError(t, err)
	assert.Equal(t, domain.Edge{Origin: "GRU", Destination: "BRC", Cost: 10}, edge)

	for _, line := range []string{"GRU,BRC", "GRU,BRC,ten", "GRU,BRC,10,1", ""} {
		_, err := DecodeRecord(line)
		assert.ErrorIs(t, err, ErrMalformedRecord, "line %q", line)
	}
}

func TestEncodeRecord_RoundTrip(t *testing.T) {
	for _, e := range sampleRoutes {
		decoded, err := DecodeRecord(EncodeRecord(e))
		require.NoError(t, err)
		assert.Equal(t, e, decoded)
	}
}

func TestIsHeader(t *testing.T) {
	assert.True(t, IsHeader("origin,destination,cost"))
	assert.True(t, IsHeader(" Origin, Destination, Cost "))
	assert.False(t, IsHeader("GRU,BRC,10"))
}
