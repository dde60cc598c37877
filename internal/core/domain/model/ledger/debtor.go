package ledger

// Debtor is a customer with a non-zero balance.
type Debtor struct {
	CustomerID string
	Name       string
	Balance    int64
}
