package indexer

import "time"

const (
	liveRetries    = 1
	catchUpRetries = 5

	catchUpInterval = 200 * time.Millisecond

	storeQueueName   = "store"
	catchUpQueueName = "catch_up"
)
