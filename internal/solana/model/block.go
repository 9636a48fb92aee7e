// Package model holds the Solana domain types shared by the node client, the pipeline and the stores.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Block is a getBlock result requested with json encoding and full transaction details.
type Block struct {
	Blockhash         string          `json:"blockhash"`
	PreviousBlockhash string          `json:"previousBlockhash"`
	ParentSlot        uint64          `json:"parentSlot"`
	BlockTime         *int64          `json:"blockTime"`
	BlockHeight       *uint64         `json:"blockHeight"`
	Rewards           json.RawMessage `json:"rewards,omitempty"`
	// Transactions is nil when the node omitted the list and empty when the block has none.
	Transactions []EncodedTransactionWithMeta `json:"transactions"`
}

// Time returns the block time in UTC, or nil when the node did not report one.
func (b *Block) Time() *time.Time {
	if b == nil || b.BlockTime == nil {
		return nil
	}
	t := time.Unix(*b.BlockTime, 0).UTC()
	return &t
}

// EncodedTransactionWithMeta is one entry of a block's transaction list.
type EncodedTransactionWithMeta struct {
	Transaction EncodedTransaction `json:"transaction"`
	Meta        *TransactionMeta   `json:"meta"`
	Version     json.RawMessage    `json:"version,omitempty"`
}

// TransactionEncoding names the variant held by EncodedTransaction.
type TransactionEncoding string

const (
	TransactionEncodingJSON         TransactionEncoding = "json"
	TransactionEncodingBinary       TransactionEncoding = "binary"
	TransactionEncodingLegacyBinary TransactionEncoding = "legacy_binary"
	TransactionEncodingAccounts     TransactionEncoding = "accounts"
	// TransactionEncodingUnknown marks an entry whose shape matched no variant; Raw keeps the entry as sent.
	TransactionEncodingUnknown TransactionEncoding = "unknown"
)

// EncodedTransaction is a tagged union over the shapes a node may return for a transaction.
// Exactly one of JSON, Binary, Accounts or Raw is set, matching Kind.
type EncodedTransaction struct {
	Kind     TransactionEncoding
	JSON     *UITransaction
	Binary   *BinaryTransaction
	Accounts *AccountsList
	Raw      json.RawMessage
}

// UITransaction is the structured json form of a transaction.
type UITransaction struct {
	Signatures []string  `json:"signatures"`
	Message    UIMessage `json:"message"`
}

// BinaryTransaction is a serialized transaction. Legacy binary entries are always base58.
type BinaryTransaction struct {
	Data     string
	Encoding string
}

// AccountsList is the signatures-and-keys form returned for transactionDetails=accounts.
type AccountsList struct {
	Signatures  []string        `json:"signatures"`
	AccountKeys json.RawMessage `json:"accountKeys"`
}

// UnmarshalJSON detects the variant from the JSON shape. An unrecognised shape does not fail the
// enclosing block; it is kept as TransactionEncodingUnknown so the entry alone is rejected on decode.
func (t *EncodedTransaction) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = EncodedTransaction{}
		return nil
	}

	if err := t.unmarshalVariant(trimmed); err != nil {
		*t = EncodedTransaction{
			Kind: TransactionEncodingUnknown,
			Raw:  append(json.RawMessage(nil), trimmed...),
		}
	}
	return nil
}

func (t *EncodedTransaction) unmarshalVariant(trimmed []byte) error {
	switch trimmed[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("unmarshal legacy binary transaction: %w", err)
		}
		*t = EncodedTransaction{
			Kind:   TransactionEncodingLegacyBinary,
			Binary: &BinaryTransaction{Data: raw, Encoding: "base58"},
		}
	case '[':
		var parts []string
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return fmt.Errorf("unmarshal binary transaction: %w", err)
		}
		if len(parts) != 2 {
			return fmt.Errorf("binary transaction: expected [data, encoding], got %d elements", len(parts))
		}
		*t = EncodedTransaction{
			Kind:   TransactionEncodingBinary,
			Binary: &BinaryTransaction{Data: parts[0], Encoding: parts[1]},
		}
	case '{':
		var shape struct {
			Message     json.RawMessage `json:"message"`
			AccountKeys json.RawMessage `json:"accountKeys"`
		}
		if err := json.Unmarshal(trimmed, &shape); err != nil {
			return fmt.Errorf("unmarshal transaction object: %w", err)
		}
		switch {
		case shape.Message != nil:
			var ui UITransaction
			if err := json.Unmarshal(trimmed, &ui); err != nil {
				return fmt.Errorf("unmarshal json transaction: %w", err)
			}
			*t = EncodedTransaction{Kind: TransactionEncodingJSON, JSON: &ui}
		case shape.AccountKeys != nil:
			var accounts AccountsList
			if err := json.Unmarshal(trimmed, &accounts); err != nil {
				return fmt.Errorf("unmarshal accounts transaction: %w", err)
			}
			*t = EncodedTransaction{Kind: TransactionEncodingAccounts, Accounts: &accounts}
		default:
			return errors.New("unknown transaction object shape")
		}
	default:
		return fmt.Errorf("unexpected transaction json starting with %q", trimmed[0])
	}
	return nil
}

// MessageKind names the variant held by UIMessage.
type MessageKind string

const (
	MessageKindRaw    MessageKind = "raw"
	MessageKindParsed MessageKind = "parsed"
)

// UIMessage is a tagged union of the raw (compiled) and the jsonParsed message forms.
type UIMessage struct {
	Kind   MessageKind
	Raw    *RawMessage
	Parsed json.RawMessage
}

// UnmarshalJSON treats a message carrying a header as raw; anything else is kept as parsed json.
func (m *UIMessage) UnmarshalJSON(data []byte) error {
	var shape struct {
		Header json.RawMessage `json:"header"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return fmt.Errorf("unmarshal message: %w", err)
	}
	if shape.Header == nil {
		*m = UIMessage{Kind: MessageKindParsed, Parsed: append(json.RawMessage(nil), data...)}
		return nil
	}

	var raw RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal raw message: %w", err)
	}
	*m = UIMessage{Kind: MessageKindRaw, Raw: &raw}
	return nil
}
