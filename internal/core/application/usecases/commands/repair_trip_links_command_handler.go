package commands

import (
	"context"
	"errors"

	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/core/domain/services"
	"bakeflow/internal/pkg/errs"
)

// RepairTripLinksCommandHandler reconciles a trip's membership with the
// order-side mirrors. The trip side is authoritative.
type RepairTripLinksCommandHandler struct {
	uowFactory TripUoWFactory
	reconciler services.TripLinkReconciler
}

// NewRepairTripLinksCommandHandler creates a handler for trip link repair.
func NewRepairTripLinksCommandHandler(uowFactory TripUoWFactory) RepairTripLinksCommandHandler {
	return RepairTripLinksCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewTripLinkReconciler(),
	}
}

// Handle processes the link repair command and returns the repair report.
// Members whose order record no longer exists are reported, not repaired.
func (h *RepairTripLinksCommandHandler) Handle(ctx context.Context, cmd RepairTripLinksCommand) (services.LinkReport, error) {
	if err := cmd.Validate(); err != nil {
		return services.LinkReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.LinkReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tripRepo := uow.TripRepository()
	aggregate, err := tripRepo.Get(ctx, cmd.TripID())
	if err != nil {
		return services.LinkReport{}, err
	}

	orderRepo := uow.OrderRepository()

	// Candidates: every member order plus every order whose mirror points at
	// this trip.
	candidates, err := orderRepo.GetAllByTrip(ctx, aggregate.ID())
	if err != nil {
		return services.LinkReport{}, err
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, o := range candidates {
		seen[o.Code().String()] = struct{}{}
	}
	for _, code := range aggregate.Members() {
		if _, ok := seen[code.String()]; ok {
			continue
		}
		member, err := orderRepo.Get(ctx, code)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return services.LinkReport{}, err
		}
		candidates = append(candidates, member)
	}

	report, err := h.reconciler.Reconcile(aggregate, candidates)
	if err != nil {
		return services.LinkReport{}, err
	}

	repaired := make([]*order.Order, 0, len(report.Relinked)+len(report.Unlinked))
	repaired = append(repaired, report.Relinked...)
	repaired = append(repaired, report.Unlinked...)
	for _, o := range repaired {
		if err = orderRepo.Update(ctx, o); err != nil {
			return services.LinkReport{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return services.LinkReport{}, err
	}

	return report, nil
}
