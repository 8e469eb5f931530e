package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pool is a row of the pools table. Members live in pool_members.
type Pool struct {
	PoolID              string          `db:"pool_id"`
	Name                string          `db:"name"`
	ExternalReference   string          `db:"external_reference"`
	CurrencyCode        string          `db:"currency_code"`
	Balance             decimal.Decimal `db:"balance"` // NUMERIC(20,4), CHECK >= 0
	MonthlyContribution decimal.Decimal `db:"monthly_contribution"`
	ApprovalThreshold   int             `db:"approval_threshold"`
	RejectionThreshold  int             `db:"rejection_threshold"`
	AuditFields
}

// PoolMember is a row of pool_members. member_id is the primary key.
type PoolMember struct {
	MemberID string    `db:"member_id"`
	PoolID   string    `db:"pool_id"`
	JoinedAt time.Time `db:"joined_at"`
}

// PoolLedgerEntry is a row of pool_ledger_entries.
type PoolLedgerEntry struct {
	EntryID      string          `db:"entry_id"`
	PoolID       string          `db:"pool_id"`
	EntryType    string          `db:"entry_type"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	ClaimID      *string         `db:"claim_id"`
	MemberID     string          `db:"member_id"`
	BalanceAfter decimal.Decimal `db:"balance_after"`
	OccurredAt   time.Time       `db:"occurred_at"`
}
