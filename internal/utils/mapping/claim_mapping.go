package mapping

import (
	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/SscSPs/family_treasury/internal/models"
	"github.com/samber/lo"
)

// ToModelClaim converts a domain Claim to a model Claim
func ToModelClaim(d domain.Claim) models.Claim {
	refs := d.AttachmentRefs
	if refs == nil {
		refs = []string{}
	}
	return models.Claim{
		ClaimID:             d.ClaimID,
		PoolID:              d.PoolID,
		RequesterMemberID:   d.RequesterMemberID,
		Amount:              d.Amount,
		Reason:              d.Reason,
		PayeeReference:      d.PayeeReference,
		AttachmentRefs:      refs,
		Status:              models.ClaimStatus(d.Status),
		VotesFor:            d.VotesFor,
		VotesAgainst:        d.VotesAgainst,
		SettlementReference: d.SettlementReference,
		ApprovedAt:          d.ApprovedAt,
		SettledAt:           d.SettledAt,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClaim converts a model Claim to a domain Claim
func ToDomainClaim(m models.Claim) domain.Claim {
	var refs []string
	if len(m.AttachmentRefs) > 0 {
		refs = m.AttachmentRefs
	}
	return domain.Claim{
		ClaimID:             m.ClaimID,
		PoolID:              m.PoolID,
		RequesterMemberID:   m.RequesterMemberID,
		Amount:              m.Amount,
		Reason:              m.Reason,
		PayeeReference:      m.PayeeReference,
		AttachmentRefs:      refs,
		Status:              domain.ClaimStatus(m.Status),
		VotesFor:            m.VotesFor,
		VotesAgainst:        m.VotesAgainst,
		SettlementReference: m.SettlementReference,
		ApprovedAt:          m.ApprovedAt,
		SettledAt:           m.SettledAt,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClaimSlice converts a slice of model Claims to a slice of domain Claims
func ToDomainClaimSlice(ms []models.Claim) []domain.Claim {
	return lo.Map(ms, func(m models.Claim, _ int) domain.Claim {
		return ToDomainClaim(m)
	})
}

// ToModelVote converts a domain Vote to a model ClaimVote
func ToModelVote(d domain.Vote) models.ClaimVote {
	return models.ClaimVote{
		VoteID:   d.VoteID,
		ClaimID:  d.ClaimID,
		MemberID: d.MemberID,
		Decision: d.Decision,
		CastAt:   d.CastAt,
	}
}

// ToDomainVotes converts model ClaimVotes to domain Votes
func ToDomainVotes(ms []models.ClaimVote) []domain.Vote {
	return lo.Map(ms, func(m models.ClaimVote, _ int) domain.Vote {
		return domain.Vote{
			VoteID:   m.VoteID,
			ClaimID:  m.ClaimID,
			MemberID: m.MemberID,
			Decision: m.Decision,
			CastAt:   m.CastAt,
		}
	})
}
