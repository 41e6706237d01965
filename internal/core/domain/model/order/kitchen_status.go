package order

import (
	"fmt"

	"bakeflow/internal/pkg/errs"
)

// KitchenStatus is the finer-grained production substate of an order that is
// InKitchen. It tracks the cake through the bakery stations:
//
//	WaitingBaker -> WaitingCrumbcoat -> WaitingCover -> Decorating -> DoneWaitingApproval
type KitchenStatus int

const (
	// KitchenStatusNone means the order carries no kitchen substate.
	KitchenStatusNone KitchenStatus = iota

	// WaitingBaker means the cake has not been baked yet. Orders in this
	// substate still contribute to baking task aggregation.
	WaitingBaker

	// WaitingCrumbcoat means the sponge is baked and waits for its crumb coat.
	WaitingCrumbcoat

	// WaitingCover means the crumb coat is set and the cake waits for its
	// final covering.
	WaitingCover

	// Decorating means the cake is being decorated.
	Decorating

	// DoneWaitingApproval means kitchen work is complete and the cake waits to
	// move on to photo approval.
	DoneWaitingApproval
)

func getKitchenStatusStrings() map[KitchenStatus]string {
	return map[KitchenStatus]string{
		KitchenStatusNone:   "",
		WaitingBaker:        "waiting-baker",
		WaitingCrumbcoat:    "waiting-crumbcoat",
		WaitingCover:        "waiting-cover",
		Decorating:          "decorating",
		DoneWaitingApproval: "done-waiting-approval",
	}
}

// Validate checks that the KitchenStatus is one of the defined substates.
// KitchenStatusNone is valid: it is the absence of a substate.
func (k KitchenStatus) Validate() error {
	if _, ok := getKitchenStatusStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"kitchen status",
			fmt.Errorf("%d is not a valid kitchen status", k),
		)
	}
	return nil
}

// String returns the kebab-case name of the substate, or the empty string for
// KitchenStatusNone. Implements fmt.Stringer.
func (k KitchenStatus) String() string {
	if str, ok := getKitchenStatusStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// KitchenStatusFromString resolves a kebab-case substate name back to its
// KitchenStatus value. The empty string maps to KitchenStatusNone.
func KitchenStatusFromString(s string) (KitchenStatus, error) {
	for status, str := range getKitchenStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return KitchenStatusNone, errs.NewValueIsInvalidErrorWithCause(
		"kitchen status",
		fmt.Errorf("%q is not a valid kitchen status", s),
	)
}
