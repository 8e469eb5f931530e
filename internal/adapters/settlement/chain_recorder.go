package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	portssvc "github.com/SscSPs/family_treasury/internal/core/ports/services"
	"github.com/SscSPs/family_treasury/internal/middleware"
	"github.com/SscSPs/family_treasury/internal/utils"
	"github.com/shopspring/decimal"
)

// ErrRecordRejected is returned when the external ledger refuses a payout outright.
// Retrying does not help.
var ErrRecordRejected = errors.New("settlement rejected by external ledger")

// ChainRecorder simulates publishing payouts to an on-chain ledger. The transaction hash is
// derived from the pool address, claim id and amount, so recording the same payout twice
// yields the same hash.
type ChainRecorder struct {
	mu     sync.Mutex
	issued map[string]string // claim id -> tx hash
}

var _ portssvc.SettlementRecorder = (*ChainRecorder)(nil)

// NewChainRecorder creates a simulated recorder.
func NewChainRecorder() *ChainRecorder {
	return &ChainRecorder{issued: make(map[string]string)}
}

func (r *ChainRecorder) Record(ctx context.Context, poolExternalReference string, claimID string, amount decimal.Decimal) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if poolExternalReference == "" || claimID == "" {
		return "", fmt.Errorf("%w: pool address and claim id are required", ErrRecordRejected)
	}
	if !amount.IsPositive() {
		return "", fmt.Errorf("%w: amount %s is not positive", ErrRecordRejected, amount)
	}

	hash := utils.Keccak256Hex(
		[]byte(poolExternalReference),
		[]byte{'|'},
		[]byte(claimID),
		[]byte{'|'},
		[]byte(amount.String()),
	)

	r.mu.Lock()
	r.issued[claimID] = hash
	r.mu.Unlock()

	middleware.GetLoggerFromCtx(ctx).Info("Payout recorded on chain",
		slog.String("pool_address", poolExternalReference),
		slog.String("claim_id", claimID),
		slog.String("tx_hash", hash))
	return hash, nil
}

// Issued returns the last hash recorded for claimID.
func (r *ChainRecorder) Issued(claimID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hash, ok := r.issued[claimID]
	return hash, ok
}
