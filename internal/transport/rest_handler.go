// Package transport exposes the REST and gRPC surfaces of the indexer.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/goodnatureofminers/soldag-backend/internal/solana/model"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

const (
	transactionsRoute = "/transactions"
	accountsRoute     = "/accounts"

	dayLayout         = "02/01/2006"
	defaultPageCount  = 10
	defaultPageOffset = 0
)

var transactionParams = map[string]struct{}{
	"id":     {},
	"day":    {},
	"count":  {},
	"offset": {},
}

var accountParams = map[string]struct{}{
	"pubkey": {},
}

type transactionsResponse struct {
	Data []model.Transaction `json:"data"`
	Next *uint64             `json:"next"`
}

type accountResponse struct {
	Data *model.Account `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// RESTHandler serves the read-only REST endpoints.
type RESTHandler struct {
	logger   *zap.Logger
	explorer TransactionExplorer
	accounts AccountReader
	metrics  Metrics
}

func NewRESTHandler(explorer TransactionExplorer, accounts AccountReader, metrics Metrics, logger *zap.Logger) (*RESTHandler, error) {
	if explorer == nil {
		return nil, errors.New("transaction explorer is required")
	}
	if accounts == nil {
		return nil, errors.New("account reader is required")
	}
	if metrics == nil {
		return nil, errors.New("http metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RESTHandler{logger: logger, explorer: explorer, accounts: accounts, metrics: metrics}, nil
}

// Register mounts the handlers on the gateway mux.
func (h *RESTHandler) Register(mux *gwruntime.ServeMux) error {
	if err := mux.HandlePath(http.MethodGet, transactionsRoute, h.observe(transactionsRoute, h.transactions)); err != nil {
		return fmt.Errorf("register %s: %w", transactionsRoute, err)
	}
	if err := mux.HandlePath(http.MethodGet, accountsRoute, h.observe(accountsRoute, h.account)); err != nil {
		return fmt.Errorf("register %s: %w", accountsRoute, err)
	}
	return nil
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) int

func (h *RESTHandler) observe(route string, next handlerFunc) gwruntime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		started := time.Now()
		code := next(w, r)
		h.metrics.ObserveRequest(route, code, started)
	}
}

func (h *RESTHandler) transactions(w http.ResponseWriter, r *http.Request) int {
	q, err := parseTransactionQuery(r.URL.Query())
	if err != nil {
		return writeError(w, http.StatusBadRequest, err.Error())
	}

	page, err := h.explorer.Transactions(r.Context(), q)
	if err != nil {
		h.logger.Error("fetch transactions failed", zap.Error(err))
		return writeError(w, http.StatusInternalServerError, "Error fetching transactions")
	}
	return writeJSON(w, http.StatusOK, transactionsResponse{Data: page.Transactions, Next: page.Next})
}

func (h *RESTHandler) account(w http.ResponseWriter, r *http.Request) int {
	values := r.URL.Query()
	if err := checkParams(values, accountParams); err != nil {
		return writeError(w, http.StatusBadRequest, err.Error())
	}
	pubkey := values.Get("pubkey")
	if pubkey == "" {
		return writeError(w, http.StatusBadRequest, "missing query parameter: pubkey")
	}

	account, err := h.accounts.GetAccount(r.Context(), pubkey)
	switch {
	case err == nil:
		return writeJSON(w, http.StatusOK, accountResponse{Data: account})
	case errors.Is(err, model.ErrInvalidKey):
		return writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrAccountNotFound):
		return writeError(w, http.StatusNotFound, "Account not found")
	default:
		h.logger.Error("fetch account failed", zap.String("pubkey", pubkey), zap.Error(err))
		return writeError(w, http.StatusInternalServerError, "Error fetching account")
	}
}

func parseTransactionQuery(values url.Values) (model.TransactionQuery, error) {
	if err := checkParams(values, transactionParams); err != nil {
		return model.TransactionQuery{}, err
	}

	q := model.TransactionQuery{
		Signature: values.Get("id"),
		Count:     defaultPageCount,
		Offset:    defaultPageOffset,
	}
	if raw := values.Get("day"); raw != "" {
		day, err := time.ParseInLocation(dayLayout, raw, time.UTC)
		if err != nil {
			return model.TransactionQuery{}, fmt.Errorf("invalid day %q: expected DD/MM/YYYY", raw)
		}
		q.Day = &day
	}
	if raw := values.Get("count"); raw != "" {
		count, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return model.TransactionQuery{}, fmt.Errorf("invalid count %q", raw)
		}
		if count == 0 {
			return model.TransactionQuery{}, fmt.Errorf("invalid count %q: must be positive", raw)
		}
		q.Count = count
	}
	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return model.TransactionQuery{}, fmt.Errorf("invalid offset %q", raw)
		}
		q.Offset = offset
	}
	return q, nil
}

func checkParams(values url.Values, allowed map[string]struct{}) error {
	var unknown []string
	for key := range values {
		if _, ok := allowed[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown query parameter: %s", unknown[0])
}

func writeJSON(w http.ResponseWriter, code int, body any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
	return code
}

func writeError(w http.ResponseWriter, code int, msg string) int {
	return writeJSON(w, code, errorResponse{Error: msg})
}
