// Package trip contains the Trip aggregate: a single driver's delivery run
// for one calendar date, holding an ordered set of member orders and an
// explicit visit sequence.
//
// The trip side owns the order<->trip relation. Member orders carry a
// denormalized mirror of it (trip ID and sequence) for fast reads; the
// application layer writes the trip first and repairs the mirror on drift.
package trip
