package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_ReportsEveryViolation(t *testing.T) {
	var verr ValidationError
	verr.Add(FieldOrigin, "AAAA", ErrInvalidCode)
	verr.Add(FieldDestination, "BBBB", ErrInvalidCode)

	err := verr.AsError()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.NotErrorIs(t, err, ErrSameEndpoint)
	assert.Contains(t, err.Error(), "Origin 'AAAA' is invalid. It must contain exactly 3 letters.")
	assert.Contains(t, err.Error(), "Destination 'BBBB' is invalid. It must contain exactly 3 letters.")
}

func TestValidationError_EmptyIsNil(t *testing.T) {
	var verr ValidationError
	assert.NoError(t, verr.AsError())
}

func TestMissingEndpointError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *MissingEndpointError
		want string
	}{
		{
			name: "both",
			err:  &MissingEndpointError{Origin: "GRU", Destination: "CDG", OriginMissing: true, DestinationMissing: true},
			want: "Error: the origin 'GRU' and the destination 'CDG' do not exist in the available routes.",
		},
		{
			name: "origin",
			err:  &MissingEndpointError{Origin: "GRU", Destination: "BRC", OriginMissing: true},
			want: "Error: the origin 'GRU' does not exist in the available routes.",
		},
		{
			name: "destination",
			err:  &MissingEndpointError{Origin: "GRU", Destination: "CDG", DestinationMissing: true},
			want: "Error: the destination 'CDG' does not exist in the available routes.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrEndpointNotFound)
		})
	}
}

func TestCategory(t *testing.T) {
	var same ValidationError
	same.Add(FieldBoth, "GRU", ErrSameEndpoint)

	tests := []struct {
		err  error
		want string
	}{
		{nil, CategoryOK},
		{ErrEmptyInput, CategoryInvalidFormat},
		{fmt.Errorf("parse: %w", ErrInvalidFormat), CategoryInvalidFormat},
		{same.AsError(), CategorySameEndpoint},
		{ErrDuplicateEdge, CategoryDuplicate},
		{&MissingEndpointError{OriginMissing: true}, CategoryEndpointNotFound},
		{ErrNoPathFound, CategoryNoPath},
		{ErrNoRoutes, CategoryNoRoutes},
		{errors.New("disk full"), CategoryInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Category(tt.err), "error: %v", tt.err)
	}
}

func TestPath_String(t *testing.T) {
	p := Path{Codes: []string{"GRU", "BRC", "CDG"}, Cost: 15}
	assert.Equal(t, "GRU - BRC - CDG at a cost of $15", p.String())
	assert.Equal(t, "GRU", p.Origin())
	assert.Equal(t, "CDG", p.Destination())
	assert.Equal(t, 2, p.Hops())
}
