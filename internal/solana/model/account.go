package model

// Account is the current on-chain state of an account as read from the node.
// Data holds only the requested prefix of the account data.
type Account struct {
	Lamports   uint64 `json:"lamports"`
	Owner      string `json:"owner"`
	Executable bool   `json:"executable"`
	RentEpoch  uint64 `json:"rent_epoch"`
	Data       []byte `json:"data"`
}
