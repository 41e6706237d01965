// Package bakingtask provides the Task aggregate: shared baking work derived
// from the live order set. Orders with the same (shape, size, flavor) triple
// are grouped into one task so the kitchen bakes them together.
//
// Tasks are created and merged by the aggregation service, shrunk or cancelled
// by its reconciliation pass when contributing orders change or leave
// production, and progressed by the production ledger as runs complete.
// Bakers may additionally create manual tasks that bypass aggregation.
package bakingtask
