package commands

import (
	"context"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order intake.
// Allocates the next shop code in the intake month and creates the order in
// incomplete status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order intake command and returns the allocated code.
// The code allocation and the insert share one transaction so a failed insert
// never burns a sequence number.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.OrderCode, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderCode{}, err
	}

	spec, err := cmd.Spec()
	if err != nil {
		return kernel.OrderCode{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.OrderCode{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	code, err := orderRepo.NextCode(ctx, int(cmd.RequestedAt().Month()), cmd.RequestedAt().Year()%100)
	if err != nil {
		return kernel.OrderCode{}, err
	}

	aggregate, err := order.NewOrder(code, cmd.CustomerName(), spec, cmd.DeliveryDate())
	if err != nil {
		return kernel.OrderCode{}, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return kernel.OrderCode{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.OrderCode{}, err
	}

	return code, nil
}
