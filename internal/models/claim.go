package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatus mirrors the status column of claims.
type ClaimStatus string

// Claim is a row of the claims table.
type Claim struct {
	ClaimID             string          `db:"claim_id"`
	PoolID              string          `db:"pool_id"`
	RequesterMemberID   string          `db:"requester_member_id"`
	Amount              decimal.Decimal `db:"amount"`
	Reason              string          `db:"reason"`
	PayeeReference      string          `db:"payee_reference"`
	AttachmentRefs      []string        `db:"attachment_refs"`
	Status              ClaimStatus     `db:"status"`
	VotesFor            int             `db:"votes_for"`
	VotesAgainst        int             `db:"votes_against"`
	SettlementReference *string         `db:"settlement_reference"`
	ApprovedAt          *time.Time      `db:"approved_at"`
	SettledAt           *time.Time      `db:"settled_at"`
	AuditFields
}

// ClaimVote is a row of claim_votes.
type ClaimVote struct {
	VoteID   string    `db:"vote_id"`
	ClaimID  string    `db:"claim_id"`
	MemberID string    `db:"member_id"`
	Decision bool      `db:"decision"`
	CastAt   time.Time `db:"cast_at"`
}
