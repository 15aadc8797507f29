// Package vehiclecache remembers which vehicles already have a row so repeated
// webhooks for the same vehicle skip the insert.
package vehiclecache

import (
	"context"
	"fmt"
	"time"

	"github.com/DIMO-Network/vehicle-signals-webhook/internal/services/eventsrepo"
	"github.com/patrickmn/go-cache"
)

// VehicleStore creates vehicle rows.
type VehicleStore interface {
	EnsureVehicle(ctx context.Context, vehicle *eventsrepo.Vehicle) (bool, error)
}

// Cache wraps a VehicleStore and memoizes the vehicle ids it has ensured.
type Cache struct {
	cache *cache.Cache
	store VehicleStore
}

// New creates a vehicle cache whose entries expire after defaultExpiration.
func New(defaultExpiration, cleanupInterval time.Duration, store VehicleStore) *Cache {
	return &Cache{
		cache: cache.New(defaultExpiration, cleanupInterval),
		store: store,
	}
}

// EnsureVehicle ensures the vehicle row exists. Vehicles seen before are not sent
// to the store again until their entry expires. Failed ensures are not cached.
func (c *Cache) EnsureVehicle(ctx context.Context, vehicle *eventsrepo.Vehicle) (bool, error) {
	if _, found := c.cache.Get(vehicle.ID); found {
		return false, nil
	}
	created, err := c.store.EnsureVehicle(ctx, vehicle)
	if err != nil {
		return false, fmt.Errorf("failed to ensure vehicle: %w", err)
	}
	c.cache.SetDefault(vehicle.ID, struct{}{})
	return created, nil
}

// Forget drops a vehicle id so the next ensure reaches the store.
func (c *Cache) Forget(vehicleID string) {
	c.cache.Delete(vehicleID)
}
