package dto

import (
	"time"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CreatePoolRequest defines the data needed to create a new pool.
type CreatePoolRequest struct {
	Name                string          `json:"name" binding:"required,max=120"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution" binding:"dgte0"`
	CurrencyCode        string          `json:"currencyCode" binding:"omitempty,len=3"` // Optional, deployment default when empty
	ApprovalThreshold   *int            `json:"approvalThreshold" binding:"omitempty,min=0"`
	RejectionThreshold  *int            `json:"rejectionThreshold" binding:"omitempty,min=0"` // 0 keeps automatic rejection disabled
}

// FundPoolRequest defines a contribution to a pool.
type FundPoolRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"dgt0"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,len=3"`
}

// PoolResponse defines the data returned for a pool.
type PoolResponse struct {
	PoolID              string          `json:"poolID"`
	Name                string          `json:"name"`
	ExternalReference   string          `json:"externalReference"`
	CurrencyCode        string          `json:"currencyCode"`
	Balance             decimal.Decimal `json:"balance"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	ApprovalThreshold   int             `json:"approvalThreshold"`
	RejectionThreshold  int             `json:"rejectionThreshold"`
	MemberIDs           []string        `json:"memberIDs"`
	CreatedAt           time.Time       `json:"createdAt"`
	CreatedBy           string          `json:"createdBy"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy       string          `json:"lastUpdatedBy"`
}

// LedgerEntryResponse defines a single pool balance movement.
type LedgerEntryResponse struct {
	EntryID      string          `json:"entryID"`
	EntryType    string          `json:"entryType"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ClaimID      *string         `json:"claimID,omitempty"`
	MemberID     string          `json:"memberID"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	OccurredAt   time.Time       `json:"occurredAt"`
}

// ListLedgerParams defines query parameters for the pool ledger.
type ListLedgerParams struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=500"`
}

// ToPoolResponse converts a domain.Pool to PoolResponse DTO
func ToPoolResponse(p *domain.Pool) PoolResponse {
	members := p.MemberIDs
	if members == nil {
		members = []string{}
	}
	return PoolResponse{
		PoolID:              p.PoolID,
		Name:                p.Name,
		ExternalReference:   p.ExternalReference,
		CurrencyCode:        p.CurrencyCode,
		Balance:             p.Balance,
		MonthlyContribution: p.MonthlyContribution,
		ApprovalThreshold:   p.ApprovalThreshold,
		RejectionThreshold:  p.RejectionThreshold,
		MemberIDs:           members,
		CreatedAt:           p.CreatedAt,
		CreatedBy:           p.CreatedBy,
		LastUpdatedAt:       p.LastUpdatedAt,
		LastUpdatedBy:       p.LastUpdatedBy,
	}
}

// ToLedgerEntryResponses converts ledger entries to their DTO form.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	return lo.Map(entries, func(e domain.LedgerEntry, _ int) LedgerEntryResponse {
		return LedgerEntryResponse{
			EntryID:      e.EntryID,
			EntryType:    string(e.EntryType),
			Amount:       e.Amount,
			CurrencyCode: e.CurrencyCode,
			ClaimID:      e.ClaimID,
			MemberID:     e.MemberID,
			BalanceAfter: e.BalanceAfter,
			OccurredAt:   e.OccurredAt,
		}
	})
}
