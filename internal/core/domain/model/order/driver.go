package order

import (
	"fmt"
	"time"

	"bakeflow/internal/pkg/errs"
)

// DriverType identifies who carries out a delivery.
type DriverType int

const (
	// DriverTypeUnknown represents an invalid or undefined driver type.
	DriverTypeUnknown DriverType = iota

	// DriverOne is the shop's first in-house driver.
	DriverOne

	// DriverTwo is the shop's second in-house driver.
	DriverTwo

	// ThirdPartyDriver is an external courier. Assignments with this type must
	// name the driver.
	ThirdPartyDriver
)

func getDriverTypeStrings() map[DriverType]string {
	return map[DriverType]string{
		DriverTypeUnknown: "unknown",
		DriverOne:         "driver-1",
		DriverTwo:         "driver-2",
		ThirdPartyDriver:  "3rd-party",
	}
}

// Validate checks the DriverType is one of the defined types.
func (d DriverType) Validate() error {
	if d == DriverTypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver type",
			fmt.Errorf("%d is not a valid driver type", d),
		)
	}
	if _, ok := getDriverTypeStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver type",
			fmt.Errorf("%d is not a valid driver type", d),
		)
	}
	return nil
}

// String returns the wire name of the driver type. Implements fmt.Stringer.
func (d DriverType) String() string {
	if str, ok := getDriverTypeStrings()[d]; ok {
		return str
	}
	return "unknown"
}

// DriverTypeFromString resolves a wire name back to its DriverType value.
func DriverTypeFromString(s string) (DriverType, error) {
	for dt, str := range getDriverTypeStrings() {
		if str == s && dt != DriverTypeUnknown {
			return dt, nil
		}
	}
	return DriverTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"driver type",
		fmt.Errorf("%q is not a valid driver type", s),
	)
}

// DeliveryAssignment records one driver being attached to an order.
// Assignments accumulate historically; the order's current assignment is the
// most recently created one. Preliminary assignments are made while the order
// is still in the approval flow so dispatch can pre-plan drivers.
type DeliveryAssignment struct {
	DriverType    DriverType
	DriverName    string
	AssignedBy    string
	VehicleInfo   string
	IsPreliminary bool
	AssignedAt    time.Time
}

// NewDeliveryAssignment creates a validated assignment record.
// A 3rd-party driver type requires a driver name.
func NewDeliveryAssignment(
	driverType DriverType,
	driverName, assignedBy, vehicleInfo string,
	isPreliminary bool,
	assignedAt time.Time,
) (DeliveryAssignment, error) {
	if err := driverType.Validate(); err != nil {
		return DeliveryAssignment{}, err
	}
	if driverType == ThirdPartyDriver && driverName == "" {
		return DeliveryAssignment{}, errs.NewValueIsRequiredError("driver name for 3rd-party driver")
	}
	if assignedBy == "" {
		return DeliveryAssignment{}, errs.NewValueIsRequiredError("assigned by")
	}

	return DeliveryAssignment{
		DriverType:    driverType,
		DriverName:    driverName,
		AssignedBy:    assignedBy,
		VehicleInfo:   vehicleInfo,
		IsPreliminary: isPreliminary,
		AssignedAt:    assignedAt,
	}, nil
}
