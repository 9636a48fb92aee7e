package node

import (
	"fmt"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

// Decoder turns block entries into Transaction records. Only json-encoded transactions
// with a raw message and present meta are accepted; every other shape is rejected.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode converts one block entry. BlockTime is left unset.
func (Decoder) Decode(entry model.EncodedTransactionWithMeta) (model.Transaction, error) {
	if entry.Meta == nil {
		return model.Transaction{}, fmt.Errorf("%w: missing meta", model.ErrDecode)
	}

	encoded := entry.Transaction
	if encoded.Kind != model.TransactionEncodingJSON || encoded.JSON == nil {
		return model.Transaction{}, fmt.Errorf("%w: unsupported transaction encoding %q", model.ErrDecode, encoded.Kind)
	}

	message := encoded.JSON.Message
	if message.Kind != model.MessageKindRaw || message.Raw == nil {
		return model.Transaction{}, fmt.Errorf("%w: unsupported message encoding %q", model.ErrDecode, message.Kind)
	}

	if len(encoded.JSON.Signatures) == 0 {
		return model.Transaction{}, fmt.Errorf("%w: transaction has no signatures", model.ErrDecode)
	}

	return model.Transaction{
		Signature: encoded.JSON.Signatures[0],
		Message:   *message.Raw,
		Meta:      *entry.Meta,
	}, nil
}
