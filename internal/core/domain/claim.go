package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ClaimStatus indicates where a claim is in its lifecycle.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "PENDING"
	ClaimApproved ClaimStatus = "APPROVED"
	ClaimPaid     ClaimStatus = "PAID"
	ClaimRejected ClaimStatus = "REJECTED"
)

// IsTerminal reports whether no further transition can leave this status.
func (s ClaimStatus) IsTerminal() bool {
	return s == ClaimPaid || s == ClaimRejected
}

// Claim is a request to withdraw funds from a pool, subject to vote.
type Claim struct {
	ClaimID             string          `json:"claimID"`
	PoolID              string          `json:"poolID"`
	RequesterMemberID   string          `json:"requesterMemberID"`
	Amount              decimal.Decimal `json:"amount"`
	Reason              string          `json:"reason"`
	PayeeReference      string          `json:"payeeReference,omitempty"`
	AttachmentRefs      []string        `json:"attachmentRefs,omitempty"`
	Status              ClaimStatus     `json:"status"`
	VotesFor            int             `json:"votesFor"`
	VotesAgainst        int             `json:"votesAgainst"`
	SettlementReference *string         `json:"settlementReference,omitempty"`
	ApprovedAt          *time.Time      `json:"approvedAt,omitempty"`
	SettledAt           *time.Time      `json:"settledAt,omitempty"`
	AuditFields
}

// ApplyVote increments the tally for decision. Only PENDING claims accept votes.
func (c *Claim) ApplyVote(decision bool, by string, at time.Time) error {
	if c.Status != ClaimPending {
		return fmt.Errorf("%w: claim %s is %s", apperrors.ErrClaimFinalized, c.ClaimID, c.Status)
	}
	if decision {
		c.VotesFor++
	} else {
		c.VotesAgainst++
	}
	c.Touch(by, at)
	return nil
}

// Approve moves PENDING to APPROVED.
func (c *Claim) Approve(by string, at time.Time) error {
	if err := c.transition(ClaimPending, ClaimApproved, by, at); err != nil {
		return err
	}
	c.ApprovedAt = &at
	return nil
}

// Reject moves PENDING to REJECTED.
func (c *Claim) Reject(by string, at time.Time) error {
	return c.transition(ClaimPending, ClaimRejected, by, at)
}

// MarkPaid moves APPROVED to PAID and records the settlement reference.
func (c *Claim) MarkPaid(settlementReference string, by string, at time.Time) error {
	if settlementReference == "" {
		return fmt.Errorf("%w: settlement reference is required to mark claim %s paid", apperrors.ErrValidation, c.ClaimID)
	}
	if err := c.transition(ClaimApproved, ClaimPaid, by, at); err != nil {
		return err
	}
	c.SettlementReference = &settlementReference
	c.SettledAt = &at
	return nil
}

func (c *Claim) transition(from, to ClaimStatus, by string, at time.Time) error {
	if c.Status != from {
		return fmt.Errorf("%w: claim %s is %s, expected %s", apperrors.ErrClaimFinalized, c.ClaimID, c.Status, from)
	}
	c.Status = to
	c.Touch(by, at)
	return nil
}

// Vote is one recorded ballot on a claim.
type Vote struct {
	VoteID   string    `json:"voteID"`
	ClaimID  string    `json:"claimID"`
	MemberID string    `json:"memberID"`
	Decision bool      `json:"decision"`
	CastAt   time.Time `json:"castAt"`
}

// VoteOutcome is the status string reported back to a voter.
type VoteOutcome string

const (
	OutcomeVoted    VoteOutcome = "VOTED"
	OutcomePaid     VoteOutcome = "PAID"
	OutcomeRejected VoteOutcome = "REJECTED"
)

// VoteResult is what castVote and retrySettlement report.
type VoteResult struct {
	Status  VoteOutcome `json:"status"`
	Message string      `json:"message"`
	Claim   *Claim      `json:"claim"`
}
