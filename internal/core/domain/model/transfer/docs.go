// Package transfer contains the transfer-order aggregate and its lifecycle
// state machine.
//
// A transfer order moves inventory from a distribution center to a store
// through fourteen strictly ordered states. External systems drive the
// lifecycle by delivering actions over webhooks; the aggregate enforces that
// the state only ever advances one step at a time along the graph, that
// duplicate deliveries are no-ops, and that out-of-order deliveries are
// rejected without mutation.
//
// A discrepancy outcome at the separation or verification step is recorded
// as a flag on the transfer, not as a fork in the flow: both the
// with-discrepancy and no-discrepancy sibling states proceed to the same
// next canonical state.
package transfer
