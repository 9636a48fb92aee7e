package model

import "time"

// TransactionFilter narrows a transaction query. Zero values disable a condition.
// The block time range is inclusive on both ends.
type TransactionFilter struct {
	Signature     string
	BlockTimeFrom *time.Time
	BlockTimeTo   *time.Time
}

// TransactionQuery is a paginated lookup by signature and/or calendar day (UTC).
type TransactionQuery struct {
	Signature string
	Day       *time.Time
	Count     uint64
	Offset    uint64
}

// TransactionPage is one page of results; Next is nil on the last page.
type TransactionPage struct {
	Transactions []Transaction
	Next         *uint64
}
