package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/routeplanner/internal/domain"
)

// runCLI executes the root command against a fresh routes file per test.
func runCLI(t *testing.T, storePath, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("ROUTEPLANNER_STORE_BACKEND", "file")
	t.Setenv("ROUTEPLANNER_STORE_PATH", storePath)
	t.Setenv("ROUTEPLANNER_STORE_SYNC_WRITES", "false")
	t.Setenv("ROUTEPLANNER_LOGGING_LEVEL", "error")
	t.Setenv("ROUTEPLANNER_CONFIG", "")

	var stdout, stderr bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRegisterAndBest(t *testing.T) {
	store := filepath.Join(t.TempDir(), "routes.txt")

	for _, route := range []string{"GRU,BRC,10", "BRC,CDG,5", "GRU,CDG,75"} {
		out, _, err := runCLI(t, store, "", "register", route)
		require.NoError(t, err)
		assert.Contains(t, out, "Route registered successfully!")
	}

	out, _, err := runCLI(t, store, "", "best", "GRU-CDG")
	require.NoError(t, err)
	assert.Equal(t, "Best route: GRU - BRC - CDG at a cost of $15\n", out)

	data, err := os.ReadFile(store)
	require.NoError(t, err)
	assert.Equal(t, "origin,destination,cost\nGRU,BRC,10\nBRC,CDG,5\nGRU,CDG,75\n", string(data))
}

func TestRegisterDuplicateFails(t *testing.T) {
	store := filepath.Join(t.TempDir(), "routes.txt")

	_, _, err := runCLI(t, store, "", "register", "GRU,BRC,10")
	require.NoError(t, err)

	_, _, err = runCLI(t, store, "", "register", "GRU,BRC,12")
	require.ErrorIs(t, err, domain.ErrDuplicateEdge)
	assert.Equal(t, "The route already exists! Duplicates cannot be added.", err.Error())
}

func TestBestOnEmptyStore(t *testing.T) {
	store := filepath.Join(t.TempDir(), "routes.txt")

	_, _, err := runCLI(t, store, "", "best", "GRU-CDG")
	require.ErrorIs(t, err, domain.ErrNoRoutes)
	assert.Equal(t, "There are no routes available to query.", err.Error())
}

func TestListFormats(t *testing.T) {
	store := filepath.Join(t.TempDir(), "routes.txt")
	_, _, err := runCLI(t, store, "", "register", "GRU,BRC,10")
	require.NoError(t, err)

	out, _, err := runCLI(t, store, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "Available routes:\nGRU -> BRC, Cost: $10\n", out)

	out, _, err = runCLI(t, store, "", "list", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "origin,destination,cost\nGRU,BRC,10\n", out)

	out, _, err = runCLI(t, store, "", "list", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"origin": "GRU"`)

	_, _, err = runCLI(t, store, "", "list", "--format", "xml")
	require.Error(t, err)
}

func TestImportFromStdin(t *testing.T) {
	store := filepath.Join(t.TempDir(), "routes.txt")

	out, stderr, err := runCLI(t, store, "GRU,BRC,10\nBRC,CDG,5\nGRU,BRC,7\n", "import", "-")
	assert.Contains(t, out, "Imported 2 routes, rejected 1.")
	assert.Contains(t, stderr, "line 3: The route already exists! Duplicates cannot be added.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateEdge))
}

func TestSeedIntoStoreAndFile(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "routes.txt")

	out, _, err := runCLI(t, store, "", "seed", "--locations", "6", "--routes", "10", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 10 routes across 6 locations (0 already present).")

	out, _, err = runCLI(t, store, "", "seed", "--locations", "6", "--routes", "10", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 0 routes across 6 locations (10 already present).")

	seedFile := filepath.Join(dir, "out", "seed.txt")
	_, _, err = runCLI(t, store, "", "seed", "--routes", "4", "--seed", "9", "--output", seedFile)
	require.NoError(t, err)
	data, err := os.ReadFile(seedFile)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(data), "\n"))

	out, _, err = runCLI(t, store, "", "seed", "--routes", "2", "--seed", "9", "--output", "-", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"routes"`)
}

func TestMenuIsDefaultCommand(t *testing.T) {
	store := filepath.Join(t.TempDir(), "routes.txt")

	out, _, err := runCLI(t, store, "1\nGRU,BRC,10\n2\nGRU-BRC\n3\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Route registered successfully!")
	assert.Contains(t, out, "Best route: GRU - BRC at a cost of $10")
}
