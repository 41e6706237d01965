package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents an intake request for a new custom-cake
// order. The shop-assigned code is allocated by the handler from the intake
// month's sequence; the order starts incomplete.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("Dana", "round", "20cm", "vanilla", nil,
//	    deliveryDate, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	code, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerName string
	shape        string
	size         string
	flavor       string
	tiers        []order.Tier
	deliveryDate time.Time
	requestedAt  time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new cake order.
// Validates the customer name, the spec triple, and both dates.
func NewCreateOrderCommand(
	customerName, shape, size, flavor string,
	tiers []order.Tier,
	deliveryDate, requestedAt time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerName(customerName),
		cmd.setSpec(shape, size, flavor, tiers),
		cmd.setDeliveryDate(deliveryDate),
		cmd.setRequestedAt(requestedAt),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerName returns the customer display name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// Spec builds the validated cake specification from the command fields.
func (c CreateOrderCommand) Spec() (order.CakeSpec, error) {
	return order.NewCakeSpec(c.shape, c.size, c.flavor, c.tiers)
}

// DeliveryDate returns the requested delivery date.
func (c CreateOrderCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// RequestedAt returns the intake instant; its month scopes the order code.
func (c CreateOrderCommand) RequestedAt() time.Time {
	return c.requestedAt
}

func (c *CreateOrderCommand) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}

	c.customerName = name
	return nil
}

func (c *CreateOrderCommand) setSpec(shape, size, flavor string, tiers []order.Tier) error {
	if _, err := order.NewCakeSpec(shape, size, flavor, tiers); err != nil {
		return err
	}

	c.shape = shape
	c.size = size
	c.flavor = flavor
	c.tiers = tiers
	return nil
}

func (c *CreateOrderCommand) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return errs.NewValueIsRequiredError("delivery date")
	}

	c.deliveryDate = deliveryDate
	return nil
}

func (c *CreateOrderCommand) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	c.requestedAt = requestedAt
	return nil
}
