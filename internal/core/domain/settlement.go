package domain

import "time"

// Settlement bundles everything the settlement transaction writes when a
// delivery completes: the assignment transition, the commission, and the
// ledger credit to the agent's account. The repository commits all of it
// atomically or not at all.
type Settlement struct {
	AssignmentID string
	OrderID      string
	AgentID      string
	AccountID    string
	CompletedAt  time.Time
	Commission   Commission
	LedgerEntry  LedgerEntry // RunningBalance is filled in by the repository
}
