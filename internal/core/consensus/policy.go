// Package consensus maps a claim's vote tally to a decision.
package consensus

import "github.com/SscSPs/family_treasury/internal/core/domain"

// Outcome is the decision for a tally.
type Outcome string

const (
	Pending  Outcome = "PENDING"
	Approved Outcome = "APPROVED"
	Rejected Outcome = "REJECTED"
)

// Config holds a pool's voting thresholds.
type Config struct {
	// ApprovalThreshold is exclusive: a claim is approved once votesFor exceeds it.
	ApprovalThreshold int
	// RejectionThreshold is exclusive as well. Zero disables rejection, so negative
	// votes only accumulate and a claim may stay PENDING forever.
	RejectionThreshold int
}

// DefaultConfig approves on the third approving vote and never rejects.
func DefaultConfig() Config {
	return Config{ApprovalThreshold: domain.DefaultApprovalThreshold}
}

// ConfigForPool reads the thresholds stored on a pool.
func ConfigForPool(p *domain.Pool) Config {
	return Config{
		ApprovalThreshold:  p.ApprovalThreshold,
		RejectionThreshold: p.RejectionThreshold,
	}
}

// Evaluate decides a tally. Approval wins when both thresholds are crossed.
func Evaluate(votesFor, votesAgainst int, cfg Config) Outcome {
	if votesFor > cfg.ApprovalThreshold {
		return Approved
	}
	if cfg.RejectionThreshold > 0 && votesAgainst > cfg.RejectionThreshold {
		return Rejected
	}
	return Pending
}
