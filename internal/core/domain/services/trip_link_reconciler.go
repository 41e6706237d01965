package services

import (
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/model/trip"
)

// LinkReport lists the orders a reconciliation run touched. Relinked orders
// had a missing or stale mirror and were re-pointed at the trip; Unlinked
// orders claimed membership the trip does not have and were detached.
// MissingMembers are trip members whose order was not supplied, so their
// mirror could not be checked.
type LinkReport struct {
	Relinked       []*order.Order
	Unlinked       []*order.Order
	MissingMembers []kernel.OrderCode
}

// IsClean reports whether the run found nothing to repair.
func (r LinkReport) IsClean() bool {
	return len(r.Relinked) == 0 && len(r.Unlinked) == 0 && len(r.MissingMembers) == 0
}

// TripLinkReconciler is a domain service that repairs drift between a trip's
// membership and the denormalized mirror on its orders. The trip side is
// authoritative: members get their mirror rewritten to match the trip's
// sequence, and orders pointing at the trip without being members are
// detached.
type TripLinkReconciler struct{}

// NewTripLinkReconciler creates a new TripLinkReconciler instance.
func NewTripLinkReconciler() TripLinkReconciler {
	return TripLinkReconciler{}
}

// Reconcile checks every supplied order against the trip and repairs its
// mirror in place. orders should contain the trip's members plus any orders
// whose mirror points at the trip. The returned report lists what changed;
// the caller persists the repaired orders.
func (TripLinkReconciler) Reconcile(t *trip.Trip, orders []*order.Order) (LinkReport, error) {
	if err := t.Validate(); err != nil {
		return LinkReport{}, err
	}

	byCode := make(map[string]*order.Order, len(orders))
	for _, o := range orders {
		if o == nil {
			continue
		}
		byCode[o.Code().String()] = o
	}

	var report LinkReport

	for _, code := range t.Members() {
		o, ok := byCode[code.String()]
		if !ok {
			report.MissingMembers = append(report.MissingMembers, code)
			continue
		}

		seq, _ := t.SequenceOf(code)
		if mirrorMatches(o, t.ID(), seq) {
			continue
		}
		if err := o.AssignToTrip(t.ID(), seq); err != nil {
			return LinkReport{}, err
		}
		report.Relinked = append(report.Relinked, o)
	}

	for _, o := range orders {
		if o == nil || o.TripID() == nil || !o.TripID().IsEqual(t.ID()) {
			continue
		}
		if t.Contains(o.Code()) {
			continue
		}
		if err := o.RemoveFromTrip(); err != nil {
			return LinkReport{}, err
		}
		report.Unlinked = append(report.Unlinked, o)
	}

	return report, nil
}

func mirrorMatches(o *order.Order, tripID kernel.UUID, seq int) bool {
	return o.TripID() != nil && o.TripID().IsEqual(tripID) &&
		o.TripSequence() != nil && *o.TripSequence() == seq
}
