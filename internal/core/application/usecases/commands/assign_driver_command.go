package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand attaches a driver to an order. Preliminary assignments
// are allowed while the order is still in the approval flow; final ones
// require the order to be ready for delivery. Assignments accumulate; the
// newest one is current.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderCode     kernel.OrderCode
	driverType    order.DriverType
	driverName    string
	assignedBy    string
	vehicleInfo   string
	isPreliminary bool
	requestedAt   time.Time

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a driver assignment command.
// A 3rd-party driver type requires a driver name.
func NewAssignDriverCommand(
	orderCode kernel.OrderCode,
	driverType order.DriverType,
	driverName, assignedBy, vehicleInfo string,
	isPreliminary bool,
	requestedAt time.Time,
) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderCode(orderCode),
		cmd.setDriver(driverType, driverName),
		cmd.setAssignedBy(assignedBy),
		cmd.setRequestedAt(requestedAt),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	cmd.vehicleInfo = vehicleInfo
	cmd.isPreliminary = isPreliminary
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderCode returns the shop-assigned code of the order.
func (c AssignDriverCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

// DriverType returns who is assigned to drive.
func (c AssignDriverCommand) DriverType() order.DriverType {
	return c.driverType
}

// DriverName returns the driver's name (always set for 3rd-party).
func (c AssignDriverCommand) DriverName() string {
	return c.driverName
}

// AssignedBy returns who made the assignment.
func (c AssignDriverCommand) AssignedBy() string {
	return c.assignedBy
}

// VehicleInfo returns free-form vehicle details.
func (c AssignDriverCommand) VehicleInfo() string {
	return c.vehicleInfo
}

// IsPreliminary reports whether this is a pre-planning assignment.
func (c AssignDriverCommand) IsPreliminary() bool {
	return c.isPreliminary
}

// RequestedAt returns when the assignment was made.
func (c AssignDriverCommand) RequestedAt() time.Time {
	return c.requestedAt
}

func (c *AssignDriverCommand) setOrderCode(code kernel.OrderCode) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.orderCode = code
	return nil
}

func (c *AssignDriverCommand) setDriver(driverType order.DriverType, driverName string) error {
	if err := driverType.Validate(); err != nil {
		return err
	}
	if driverType == order.ThirdPartyDriver && driverName == "" {
		return errs.NewValueIsRequiredError("driver name for 3rd-party driver")
	}

	c.driverType = driverType
	c.driverName = driverName
	return nil
}

func (c *AssignDriverCommand) setAssignedBy(assignedBy string) error {
	if assignedBy == "" {
		return errs.NewValueIsRequiredError("assigned by")
	}

	c.assignedBy = assignedBy
	return nil
}

func (c *AssignDriverCommand) setRequestedAt(requestedAt time.Time) error {
	if requestedAt.IsZero() {
		return errs.NewValueIsRequiredError("requested at")
	}

	c.requestedAt = requestedAt
	return nil
}
