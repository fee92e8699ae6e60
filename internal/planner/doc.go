// Package planner holds the scheduling and budget rules of a trip as pure
// functions over domain values: destination placement and reordering,
// first-fit activity slotting, budget reconciliation and the spending
// forecast. Nothing here performs I/O; services load the inputs, call into
// planner, then persist the result in a single write.
package planner
