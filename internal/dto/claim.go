package dto

import (
	"time"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// SubmitClaimRequest defines the data needed to open a claim against a pool.
type SubmitClaimRequest struct {
	PoolID         string          `json:"poolID" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"dgt0"`
	Reason         string          `json:"reason" binding:"required,max=2000"`
	PayeeReference string          `json:"payeeReference" binding:"omitempty,max=256"`
	AttachmentRefs []string        `json:"attachmentRefs" binding:"omitempty,max=20,dive,required"`
}

// CastVoteRequest carries a single ballot. Decision is a pointer so that an explicit false binds.
type CastVoteRequest struct {
	Decision *bool `json:"decision" binding:"required"`
}

// ClaimResponse defines the data returned for a claim.
type ClaimResponse struct {
	ClaimID             string          `json:"claimID"`
	PoolID              string          `json:"poolID"`
	RequesterMemberID   string          `json:"requesterMemberID"`
	Amount              decimal.Decimal `json:"amount"`
	Reason              string          `json:"reason"`
	PayeeReference      string          `json:"payeeReference,omitempty"`
	AttachmentRefs      []string        `json:"attachmentRefs,omitempty"`
	Status              string          `json:"status"`
	VotesFor            int             `json:"votesFor"`
	VotesAgainst        int             `json:"votesAgainst"`
	SettlementReference *string         `json:"settlementReference,omitempty"`
	ApprovedAt          *time.Time      `json:"approvedAt,omitempty"`
	SettledAt           *time.Time      `json:"settledAt,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
}

// ListClaimsParams defines query parameters for listing a pool's claims.
type ListClaimsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListClaimsResponse is one page of claims, newest first.
type ListClaimsResponse struct {
	Claims    []ClaimResponse `json:"claims"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// VoteResponse defines a recorded ballot.
type VoteResponse struct {
	VoteID   string    `json:"voteID"`
	MemberID string    `json:"memberID"`
	Decision bool      `json:"decision"`
	CastAt   time.Time `json:"castAt"`
}

// VoteResultResponse is returned by the vote and settle endpoints.
type VoteResultResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Claim   ClaimResponse `json:"claim"`
}

// ToClaimResponse converts a domain.Claim to ClaimResponse DTO
func ToClaimResponse(c *domain.Claim) ClaimResponse {
	return ClaimResponse{
		ClaimID:             c.ClaimID,
		PoolID:              c.PoolID,
		RequesterMemberID:   c.RequesterMemberID,
		Amount:              c.Amount,
		Reason:              c.Reason,
		PayeeReference:      c.PayeeReference,
		AttachmentRefs:      c.AttachmentRefs,
		Status:              string(c.Status),
		VotesFor:            c.VotesFor,
		VotesAgainst:        c.VotesAgainst,
		SettlementReference: c.SettlementReference,
		ApprovedAt:          c.ApprovedAt,
		SettledAt:           c.SettledAt,
		CreatedAt:           c.CreatedAt,
		LastUpdatedAt:       c.LastUpdatedAt,
	}
}

// ToListClaimsResponse builds a page response.
func ToListClaimsResponse(claims []domain.Claim, nextToken *string) ListClaimsResponse {
	return ListClaimsResponse{
		Claims: lo.Map(claims, func(c domain.Claim, _ int) ClaimResponse {
			return ToClaimResponse(&c)
		}),
		NextToken: nextToken,
	}
}

// ToVoteResponses converts ballots to their DTO form.
func ToVoteResponses(votes []domain.Vote) []VoteResponse {
	return lo.Map(votes, func(v domain.Vote, _ int) VoteResponse {
		return VoteResponse{
			VoteID:   v.VoteID,
			MemberID: v.MemberID,
			Decision: v.Decision,
			CastAt:   v.CastAt,
		}
	})
}

// ToVoteResultResponse converts a VoteResult to its DTO form.
func ToVoteResultResponse(r *domain.VoteResult) VoteResultResponse {
	return VoteResultResponse{
		Status:  string(r.Status),
		Message: r.Message,
		Claim:   ToClaimResponse(r.Claim),
	}
}
