package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/routeplanner/internal/domain"
)

func TestImportRoutesCollectsRejectedLines(t *testing.T) {
	svc, store := newTestService()

	input := strings.Join([]string{
		"origin,destination,cost",
		"GRU,BRC,10",
		"",
		"BRC,CDG,5",
		"GRU,BRC,20",
		"GRU;CDG;3",
	}, "\n")

	report, err := svc.ImportRoutes(context.Background(), strings.NewReader(input))
	assert.Equal(t, ImportReport{Imported: 2, Rejected: 2}, report)

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	require.Len(t, importErr.Errors, 2)
	assert.Equal(t, 5, importErr.Errors[0].Line)
	assert.ErrorIs(t, importErr.Errors[0], domain.ErrDuplicateEdge)
	assert.Equal(t, 6, importErr.Errors[1].Line)
	assert.Equal(t, "GRU;CDG;3", importErr.Errors[1].Input)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	assert.Equal(t, 2, store.Len())
}

func TestImportRoutesWithoutFailures(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.ImportRoutes(context.Background(), strings.NewReader("GRU,BRC,10\nBRC,CDG,5\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)

	path, err := svc.QueryBestRoute(context.Background(), "GRU-CDG")
	require.NoError(t, err)
	assert.Equal(t, 15, path.Cost)
}

func TestImportRoutesHeaderOnlyCountsOnFirstLine(t *testing.T) {
	svc, _ := newTestService()

	report, err := svc.ImportRoutes(context.Background(), strings.NewReader("GRU,BRC,10\norigin,destination,cost\n"))
	assert.Equal(t, ImportReport{Imported: 1, Rejected: 1}, report)
	require.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestImportRoutesRejectsOversizedLineAndContinues(t *testing.T) {
	svc, store := newTestService()

	input := "GRU,BRC,10\n" + strings.Repeat("x", 70000) + "\nBRC,CDG,5\n"
	report, err := svc.ImportRoutes(context.Background(), strings.NewReader(input))
	assert.Equal(t, ImportReport{Imported: 2, Rejected: 1}, report)

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	require.Len(t, importErr.Errors, 1)
	assert.Equal(t, 2, importErr.Errors[0].Line)
	assert.Less(t, len(importErr.Errors[0].Input), 64)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	assert.Equal(t, 2, store.Len())
}

func TestImportRoutesStopsOnCancellation(t *testing.T) {
	svc, store := newTestService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.ImportRoutes(ctx, strings.NewReader("GRU,BRC,10\n"))
	require.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, report.Imported)
	assert.Zero(t, store.Len())
}

func TestImportErrorMessage(t *testing.T) {
	var e ImportError
	assert.Nil(t, e.asError())

	e.append(3, "GRU", domain.ErrInvalidFormat)
	assert.Equal(t, `line 3 ("GRU"): invalid format`, e.Error())

	e.append(4, "", nil)
	assert.Len(t, e.Errors, 1)

	e.append(7, "GRU,GRU,1", domain.ErrSameEndpoint)
	assert.Equal(t, `2 lines rejected: line 3 ("GRU"): invalid format; line 7 ("GRU,GRU,1"): origin and destination are the same;`, e.Error())
}
