package clickhouse

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

// transactionRow mirrors solana_transactions; message and meta are stored as json strings.
type transactionRow struct {
	Signature string     `ch:"signature"`
	Message   string     `ch:"message"`
	Meta      string     `ch:"meta"`
	BlockTime *time.Time `ch:"block_time"`
}

type countRow struct {
	Total uint64 `ch:"total"`
}

func newTransactionRow(tx model.Transaction) (transactionRow, error) {
	message, err := json.Marshal(tx.Message)
	if err != nil {
		return transactionRow{}, fmt.Errorf("marshal message: %w", err)
	}
	meta, err := json.Marshal(tx.Meta)
	if err != nil {
		return transactionRow{}, fmt.Errorf("marshal meta: %w", err)
	}

	row := transactionRow{
		Signature: tx.Signature,
		Message:   string(message),
		Meta:      string(meta),
	}
	if tx.BlockTime != nil {
		t := tx.BlockTime.UTC()
		row.BlockTime = &t
	}
	return row, nil
}

func (row transactionRow) toModel() (model.Transaction, error) {
	tx := model.Transaction{Signature: row.Signature}
	if err := json.Unmarshal([]byte(row.Message), &tx.Message); err != nil {
		return model.Transaction{}, fmt.Errorf("unmarshal message of %s: %w", row.Signature, err)
	}
	if err := json.Unmarshal([]byte(row.Meta), &tx.Meta); err != nil {
		return model.Transaction{}, fmt.Errorf("unmarshal meta of %s: %w", row.Signature, err)
	}
	if row.BlockTime != nil {
		t := row.BlockTime.UTC()
		tx.BlockTime = &t
	}
	return tx, nil
}
