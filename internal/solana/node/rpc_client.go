// Package node talks to a Solana RPC node and converts its responses into domain types.
package node

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
)

// RPCClient wraps the solana-go JSON-RPC client with metrics instrumentation.
type RPCClient struct {
	client     *rpc.Client
	rpcMetrics RPCMetrics
}

// NewRPCClient constructs an instrumented client for endpoint. A non-empty apiKey is sent as the api-key query parameter.
func NewRPCClient(endpoint, apiKey string, rpcMetrics RPCMetrics) (*RPCClient, error) {
	if rpcMetrics == nil {
		return nil, errors.New("rpc metrics is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rpc url scheme %q not supported", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}
	if apiKey != "" {
		q := parsed.Query()
		q.Set("api-key", apiKey)
		parsed.RawQuery = q.Encode()
	}

	return &RPCClient{
		client:     rpc.New(parsed.String()),
		rpcMetrics: rpcMetrics,
	}, nil
}

// GetHealth returns the node health status string.
func (r *RPCClient) GetHealth(ctx context.Context) (status string, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_health", err, started)
	}()
	return r.client.GetHealth(ctx)
}

// GetLatestBlockhash returns the latest blockhash together with the slot it was observed at.
func (r *RPCClient) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (res *rpc.GetLatestBlockhashResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_latest_blockhash", err, started)
	}()
	return r.client.GetLatestBlockhash(ctx, commitment)
}

// GetBlock returns the block at slot decoded into the domain wire types.
func (r *RPCClient) GetBlock(ctx context.Context, slot uint64, cfg BlockConfig) (block *model.Block, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block", err, started)
	}()

	if err = r.client.RPCCallForInto(ctx, &block, "getBlock", []interface{}{slot, cfg}); err != nil {
		return nil, err
	}
	if block == nil {
		err = fmt.Errorf("block %d not available", slot)
		return nil, err
	}
	return block, nil
}

// GetAccountInfoWithOpts returns the account at the given address. An unknown account yields rpc.ErrNotFound.
func (r *RPCClient) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (res *rpc.GetAccountInfoResult, err error) {
	started := time.Now()
	defer func() {
		observed := err
		if errors.Is(err, rpc.ErrNotFound) {
			observed = nil
		}
		r.rpcMetrics.Observe("get_account_info", observed, started)
	}()
	return r.client.GetAccountInfoWithOpts(ctx, account, opts)
}
