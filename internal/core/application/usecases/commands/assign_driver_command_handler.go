package commands

import (
	"context"

	"bakeflow/internal/core/domain/model/order"
)

// AssignDriverCommandHandler records driver assignments against orders.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignDriverCommandHandler creates a handler for driver assignments.
func NewAssignDriverCommandHandler(uowFactory OrderUoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the driver assignment command.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	assignment, err := order.NewDeliveryAssignment(
		cmd.DriverType(),
		cmd.DriverName(),
		cmd.AssignedBy(),
		cmd.VehicleInfo(),
		cmd.IsPreliminary(),
		cmd.RequestedAt(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderCode())
	if err != nil {
		return err
	}

	if err = aggregate.AssignDriver(assignment); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
