package indexer

import (
	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
	"github.com/google/uuid"
)

// storeJob carries a fetched block to the store sink.
type storeJob struct {
	block  *model.Block
	height uint64
}

// catchUpJob asks for every height in [from, to) to be backfilled.
type catchUpJob struct {
	id   uuid.UUID
	from uint64
	to   uint64
}
