package kernel

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"bakeflow/internal/pkg/errs"
	"bakeflow/internal/pkg/guard"
)

// ErrOrderCodeIsNotConstructed is returned when attempting to use an improperly
// initialized OrderCode. Order codes must be created via NewOrderCode,
// OrderCodeFromString, or FirstOrderCodeInMonth.
var ErrOrderCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"order code must be created via NewOrderCode, OrderCodeFromString, or FirstOrderCodeInMonth")

// orderCodePattern matches the shop code format MM-YY-NNN.
var orderCodePattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{3})$`)

// OrderCode is the shop-assigned identifier for an order: a sequential number
// scoped to the calendar month the order was created in, rendered as MM-YY-NNN
// (e.g. "05-25-001" for the first order of May 2025).
//
// OrderCode is an immutable value object. The zero value is invalid and fails
// validation; use the constructors to create instances.
//
// Example:
//
//	code, err := kernel.OrderCodeFromString("05-25-001")
//	if err != nil {
//	    // Handle validation error
//	}
//	next := code.Next() // 05-25-002
type OrderCode struct { //nolint:recvcheck //using for validation
	month    int
	year     int
	sequence int
	guard    guard.ConstructorGuard
}

// NewOrderCode creates an OrderCode from its parts.
// Month must be 1..12, year is the two-digit year 0..99, and sequence must be
// between 1 and 999 inclusive.
func NewOrderCode(month, year, sequence int) (OrderCode, error) {
	if month < 1 || month > 12 {
		return OrderCode{}, errs.NewValueIsOutOfRangeError("month", month, 1, 12)
	}
	if year < 0 || year > 99 {
		return OrderCode{}, errs.NewValueIsOutOfRangeError("year", year, 0, 99)
	}
	if sequence < 1 || sequence > 999 {
		return OrderCode{}, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, 999)
	}

	return OrderCode{
		month:    month,
		year:     year,
		sequence: sequence,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderCodeFromString parses an order code in MM-YY-NNN format.
// Returns an error if the string does not match the format or any part is out
// of range. This is typically used when reconstructing orders from persistence
// or parsing codes received from the shop front.
func OrderCodeFromString(s string) (OrderCode, error) {
	m := orderCodePattern.FindStringSubmatch(s)
	if m == nil {
		return OrderCode{}, errs.NewValueIsInvalidErrorWithCause(
			"order code",
			fmt.Errorf("%q does not match MM-YY-NNN", s),
		)
	}

	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	sequence, _ := strconv.Atoi(m[3])

	return NewOrderCode(month, year, sequence)
}

// FirstOrderCodeInMonth returns the first code (sequence 001) for the calendar
// month of t. Used at intake when no order exists yet for the month.
func FirstOrderCodeInMonth(t time.Time) OrderCode {
	code, _ := NewOrderCode(int(t.Month()), t.Year()%100, 1)
	return code
}

// Next returns the code following this one within the same month.
// The shop assigns codes sequentially, so intake takes the highest existing
// code for the month and calls Next.
func (c OrderCode) Next() (OrderCode, error) {
	return NewOrderCode(c.month, c.year, c.sequence+1)
}

// Month returns the month component (1..12).
func (c OrderCode) Month() int {
	return c.month
}

// Year returns the two-digit year component.
func (c OrderCode) Year() int {
	return c.year
}

// Sequence returns the sequential number within the month (1..999).
func (c OrderCode) Sequence() int {
	return c.sequence
}

// SameMonth reports whether two codes belong to the same calendar month.
func (c OrderCode) SameMonth(other OrderCode) bool {
	return c.month == other.month && c.year == other.year
}

// String renders the code in MM-YY-NNN format.
// Implements fmt.Stringer.
func (c OrderCode) String() string {
	return fmt.Sprintf("%02d-%02d-%03d", c.month, c.year, c.sequence)
}

// IsEqual compares two order codes by value.
func (c OrderCode) IsEqual(other OrderCode) bool {
	return c.month == other.month && c.year == other.year && c.sequence == other.sequence
}

// Validate checks that the OrderCode was created through a constructor.
// Returns ErrOrderCodeIsNotConstructed for zero-value codes.
func (c OrderCode) Validate() error {
	return c.guard.Validate(ErrOrderCodeIsNotConstructed)
}
