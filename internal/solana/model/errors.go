package model

import "errors"

var (
	// ErrDecode marks a transaction the pipeline cannot turn into a Transaction record.
	ErrDecode = errors.New("decode transaction")
	// ErrInvalidKey is returned for a malformed account public key.
	ErrInvalidKey = errors.New("invalid account key")
	// ErrAccountNotFound is returned when the node has no value for the account.
	ErrAccountNotFound = errors.New("account not found")
)
