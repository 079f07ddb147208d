package memstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
)

type deviceStore struct {
	s *Store
}

func (d *deviceStore) Upsert(_ context.Context, dev *models.UserDevice) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	now := time.Now().UTC()
	for id, existing := range d.s.devices {
		if existing.UserID == dev.UserID && existing.TokenHash == dev.TokenHash {
			existing.Platform = dev.Platform
			existing.EndpointARN = dev.EndpointARN
			existing.Enabled = dev.Enabled
			existing.UpdatedAt = now
			d.s.devices[id] = existing
			dev.ID = id
			return nil
		}
	}
	if dev.ID.IsZero() {
		dev.ID = primitive.NewObjectID()
	}
	dev.CreatedAt = now
	dev.UpdatedAt = now
	d.s.devices[dev.ID] = *dev
	return nil
}

func (d *deviceStore) ByUser(_ context.Context, userID primitive.ObjectID) ([]models.UserDevice, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	var out []models.UserDevice
	for _, dev := range d.s.devices {
		if dev.UserID == userID && dev.Enabled {
			out = append(out, dev)
		}
	}
	return out, nil
}
