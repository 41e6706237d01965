package order

import (
	"errors"
	"fmt"

	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

var ErrCakeSpecIsNotConstructed = errors.New(
	"CakeSpec must be created via NewCakeSpec constructor",
)

// SpecKey is the (shape, size, flavor) triple used to group orders into shared
// baking tasks. Two orders with the same SpecKey can be baked in one run.
// SpecKey is comparable and safe to use as a map key.
type SpecKey struct {
	Shape  string
	Size   string
	Flavor string
}

// String renders the key as "shape/size/flavor", e.g. "Round/16CM/Vanilla".
func (k SpecKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Shape, k.Size, k.Flavor)
}

// Tier describes one tier of a multi-tier cake.
type Tier struct {
	// Number is the 1-based tier position counted from the bottom.
	Number int

	// Detail is the free-form tier description (covering, decoration notes).
	Detail string
}

// CakeSpec is the immutable cake specification of an order: the grouping
// triple (shape, size, flavor) plus tier details for multi-tier cakes.
//
// The zero value is invalid; use NewCakeSpec.
type CakeSpec struct {
	shape  string
	size   string
	flavor string
	tiers  []Tier

	// guard ensures the value was properly initialized
	guard guard.ConstructorGuard
}

// NewCakeSpec creates a validated cake specification.
// Shape, size, and flavor are required. Tiers are optional; when supplied,
// every tier must carry a positive tier number.
func NewCakeSpec(shape, size, flavor string, tiers []Tier) (CakeSpec, error) {
	if shape == "" {
		return CakeSpec{}, errs.NewValueIsRequiredError("shape")
	}
	if size == "" {
		return CakeSpec{}, errs.NewValueIsRequiredError("size")
	}
	if flavor == "" {
		return CakeSpec{}, errs.NewValueIsRequiredError("flavor")
	}

	for _, t := range tiers {
		if t.Number <= 0 {
			return CakeSpec{}, errs.NewValueIsInvalidErrorWithCause(
				"tier number",
				fmt.Errorf("%d is not greater than 0", t.Number),
			)
		}
	}

	copied := make([]Tier, len(tiers))
	copy(copied, tiers)

	return CakeSpec{
		shape:  shape,
		size:   size,
		flavor: flavor,
		tiers:  copied,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Shape returns the cake shape, e.g. "Round".
func (s CakeSpec) Shape() string {
	return s.shape
}

// Size returns the cake size, e.g. "16CM".
func (s CakeSpec) Size() string {
	return s.size
}

// Flavor returns the cake flavor, e.g. "Vanilla".
func (s CakeSpec) Flavor() string {
	return s.flavor
}

// TierCount returns the number of tiers. Zero means a single-tier cake whose
// detail lives on the spec itself.
func (s CakeSpec) TierCount() int {
	return len(s.tiers)
}

// Tiers returns a copy of the per-tier details.
func (s CakeSpec) Tiers() []Tier {
	copied := make([]Tier, len(s.tiers))
	copy(copied, s.tiers)
	return copied
}

// Key returns the (shape, size, flavor) grouping triple.
func (s CakeSpec) Key() SpecKey {
	return SpecKey{Shape: s.shape, Size: s.size, Flavor: s.flavor}
}

// Validate checks that the CakeSpec was created via NewCakeSpec.
func (s CakeSpec) Validate() error {
	return s.guard.Validate(ErrCakeSpecIsNotConstructed)
}
