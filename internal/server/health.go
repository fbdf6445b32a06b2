package server

import (
	"context"

	"github.com/vanshika/routeplanner/internal/repository"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// StoreHealthService probes the route store when its backend supports it.
type StoreHealthService struct {
	Store any
}

// Probe implements the HealthService interface.
func (s StoreHealthService) Probe(ctx context.Context) error {
	pinger, ok := s.Store.(repository.Pinger)
	if !ok {
		return nil
	}
	return pinger.Ping(ctx)
}
