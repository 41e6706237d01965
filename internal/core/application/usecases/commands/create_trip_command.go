package commands

import (
	"errors"
	"time"

	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrCreateTripCommandIsNotConstructed = errors.New(
	"CreateTripCommand must be created via NewCreateTripCommand constructor",
)

// CreateTripCommand creates an empty planned trip for one driver and date.
type CreateTripCommand struct { //nolint:recvcheck //using for validation
	name        string
	driverType  order.DriverType
	driverName  string
	vehicleInfo string
	date        time.Time

	guard guard.ConstructorGuard
}

// NewCreateTripCommand creates a trip creation command.
// A 3rd-party driver type requires a driver name.
func NewCreateTripCommand(
	name string,
	driverType order.DriverType,
	driverName, vehicleInfo string,
	date time.Time,
) (CreateTripCommand, error) {
	cmd := CreateTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setDriver(driverType, driverName),
		cmd.setDate(date),
	); err != nil {
		return CreateTripCommand{}, err
	}

	cmd.vehicleInfo = vehicleInfo
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
}

// Name returns the trip display name.
func (c CreateTripCommand) Name() string {
	return c.name
}

// DriverType returns who drives the trip.
func (c CreateTripCommand) DriverType() order.DriverType {
	return c.driverType
}

// DriverName returns the driver's name.
func (c CreateTripCommand) DriverName() string {
	return c.driverName
}

// VehicleInfo returns free-form vehicle details.
func (c CreateTripCommand) VehicleInfo() string {
	return c.vehicleInfo
}

// Date returns the calendar date of the run.
func (c CreateTripCommand) Date() time.Time {
	return c.date
}

func (c *CreateTripCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("trip name")
	}

	c.name = name
	return nil
}

func (c *CreateTripCommand) setDriver(driverType order.DriverType, driverName string) error {
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

func (c *CreateTripCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("trip date")
	}

	c.date = date
	return nil
}
