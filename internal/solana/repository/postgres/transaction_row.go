package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

type transactionRow struct {
	Signature string     `db:"signature"`
	Message   []byte     `db:"message"`
	Meta      []byte     `db:"meta"`
	BlockTime *time.Time `db:"block_time"`
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

	row := transactionRow{Signature: tx.Signature, Message: message, Meta: meta}
	if tx.BlockTime != nil {
		t := tx.BlockTime.UTC()
		row.BlockTime = &t
	}
	return row, nil
}

func (row transactionRow) toModel() (model.Transaction, error) {
	tx := model.Transaction{Signature: row.Signature}
	if err := json.Unmarshal(row.Message, &tx.Message); err != nil {
		return model.Transaction{}, fmt.Errorf("unmarshal message of %s: %w", row.Signature, err)
	}
	if err := json.Unmarshal(row.Meta, &tx.Meta); err != nil {
		return model.Transaction{}, fmt.Errorf("unmarshal meta of %s: %w", row.Signature, err)
	}
	if row.BlockTime != nil {
		t := row.BlockTime.UTC()
		tx.BlockTime = &t
	}
	return tx, nil
}
