package worker

import (
	"context"
	"fmt"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/metrics"
	"github.com/Domenick1991/digitalairlines/internal/repository"
	log "github.com/sirupsen/logrus"
)

// Reconciler compares every ticket pool with capacity minus active bookings.
type Reconciler struct {
	inventory repository.InventoryRepository
	repair    bool
}

func NewReconciler(inventory repository.InventoryRepository, repair bool) *Reconciler {
	return &Reconciler{inventory: inventory, repair: repair}
}

// Run reports the pools that were out of line. With repair enabled they are
// reset to the expected count.
func (r *Reconciler) Run(ctx context.Context) ([]domain.InventoryDrift, error) {
	drifts, err := r.inventory.FindDrift(ctx)
	if err != nil {
		return nil, fmt.Errorf("find drift: %w", err)
	}

	for _, d := range drifts {
		metrics.InventoryDrift.WithLabelValues(string(d.Class)).Inc()
		entry := log.WithFields(log.Fields{
			"flight_id": d.FlightID,
			"class":     d.Class,
			"capacity":  d.Capacity,
			"booked":    d.Booked,
			"available": d.Available,
			"expected":  d.Expected(),
		})
		if !r.repair {
			entry.Warn("inventory drift detected")
			continue
		}
		if err := r.inventory.Repair(ctx, d.FlightID, d.Class); err != nil {
			entry.WithError(err).Error("inventory repair failed")
			continue
		}
		entry.Warn("inventory drift repaired")
	}
	return drifts, nil
}
