package topics

const (
	// Apostas do ledger manual
	BetPlaced   = "bet_placed"
	BetResolved = "bet_resolved"

	// DLQs
	BetResolvedDLQ = "bet_resolved_dlq"
)
