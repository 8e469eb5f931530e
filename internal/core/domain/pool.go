package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DefaultApprovalThreshold is the number of approving votes a claim must exceed to be approved.
const DefaultApprovalThreshold = 2

// Pool is a shared treasury with a balance and a fixed member set.
type Pool struct {
	PoolID              string          `json:"poolID"`
	Name                string          `json:"name"`
	ExternalReference   string          `json:"externalReference"` // Opaque stand-in for an on-chain contract address
	CurrencyCode        string          `json:"currencyCode"`      // Operating currency label, never converted
	Balance             decimal.Decimal `json:"balance"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	ApprovalThreshold   int             `json:"approvalThreshold"`
	RejectionThreshold  int             `json:"rejectionThreshold"` // 0 disables automatic rejection
	MemberIDs           []string        `json:"memberIDs"`
	AuditFields
}

// HasMember reports whether memberID belongs to the pool.
func (p *Pool) HasMember(memberID string) bool {
	return slices.Contains(p.MemberIDs, memberID)
}

// Credit adds amount to the balance. Both the amount and the new balance must fit an amount column.
func (p *Pool) Credit(amount decimal.Decimal, by string, at time.Time) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: funding amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	balance := p.Balance.Add(amount)
	if err := ValidateAmount(balance); err != nil {
		return fmt.Errorf("%w: pool balance would reach %s", apperrors.ErrInvalidAmount, balance)
	}
	p.Balance = balance
	p.Touch(by, at)
	return nil
}

// Debit removes amount from the balance. The balance never goes below zero.
func (p *Pool) Debit(amount decimal.Decimal, by string, at time.Time) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: debit amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}
	if p.Balance.LessThan(amount) {
		return fmt.Errorf("%w: balance %s is below requested %s", apperrors.ErrInsufficientFunds, p.Balance, amount)
	}
	p.Balance = p.Balance.Sub(amount)
	p.Touch(by, at)
	return nil
}

// PoolMember records a member's association with a pool.
type PoolMember struct {
	PoolID   string    `json:"poolID"`
	MemberID string    `json:"memberID"`
	JoinedAt time.Time `json:"joinedAt"`
}
