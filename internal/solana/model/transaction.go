package model

import (
	"encoding/json"
	"time"
)

// Transaction is the persisted record of one decoded transaction.
type Transaction struct {
	Signature string          `json:"signature"`
	Message   RawMessage      `json:"message"`
	Meta      TransactionMeta `json:"meta"`
	BlockTime *time.Time      `json:"block_time"`
}

// RawMessage is a compiled transaction message.
type RawMessage struct {
	Header              MessageHeader         `json:"header"`
	AccountKeys         []string              `json:"accountKeys"`
	RecentBlockhash     string                `json:"recentBlockhash"`
	Instructions        []CompiledInstruction `json:"instructions"`
	AddressTableLookups []AddressTableLookup  `json:"addressTableLookups,omitempty"`
}

type MessageHeader struct {
	NumRequiredSignatures       uint8 `json:"numRequiredSignatures"`
	NumReadonlySignedAccounts   uint8 `json:"numReadonlySignedAccounts"`
	NumReadonlyUnsignedAccounts uint8 `json:"numReadonlyUnsignedAccounts"`
}

// CompiledInstruction references accounts by index into the message account keys.
// Index slices use uint16 so that they encode as json arrays rather than base64.
type CompiledInstruction struct {
	ProgramIDIndex uint16   `json:"programIdIndex"`
	Accounts       []uint16 `json:"accounts"`
	Data           string   `json:"data"`
	StackHeight    *uint32  `json:"stackHeight,omitempty"`
}

type AddressTableLookup struct {
	AccountKey      string   `json:"accountKey"`
	WritableIndexes []uint16 `json:"writableIndexes"`
	ReadonlyIndexes []uint16 `json:"readonlyIndexes"`
}

// TransactionMeta is the status metadata returned alongside a transaction.
// Fields the pipeline never inspects are kept as raw json.
type TransactionMeta struct {
	Err                  json.RawMessage  `json:"err"`
	Status               json.RawMessage  `json:"status,omitempty"`
	Fee                  uint64           `json:"fee"`
	PreBalances          []uint64         `json:"preBalances"`
	PostBalances         []uint64         `json:"postBalances"`
	InnerInstructions    json.RawMessage  `json:"innerInstructions,omitempty"`
	LogMessages          []string         `json:"logMessages,omitempty"`
	PreTokenBalances     json.RawMessage  `json:"preTokenBalances,omitempty"`
	PostTokenBalances    json.RawMessage  `json:"postTokenBalances,omitempty"`
	Rewards              json.RawMessage  `json:"rewards,omitempty"`
	LoadedAddresses      *LoadedAddresses `json:"loadedAddresses,omitempty"`
	ReturnData           json.RawMessage  `json:"returnData,omitempty"`
	ComputeUnitsConsumed *uint64          `json:"computeUnitsConsumed,omitempty"`
}

type LoadedAddresses struct {
	Writable []string `json:"writable"`
	Readonly []string `json:"readonly"`
}
