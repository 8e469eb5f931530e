package mapping

import (
	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/SscSPs/family_treasury/internal/models"
	"github.com/samber/lo"
)

// ToModelPool converts a domain Pool to a model Pool. Members are stored separately.
func ToModelPool(d domain.Pool) models.Pool {
	return models.Pool{
		PoolID:              d.PoolID,
		Name:                d.Name,
		ExternalReference:   d.ExternalReference,
		CurrencyCode:        d.CurrencyCode,
		Balance:             d.Balance,
		MonthlyContribution: d.MonthlyContribution,
		ApprovalThreshold:   d.ApprovalThreshold,
		RejectionThreshold:  d.RejectionThreshold,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPool converts a model Pool and its member ids to a domain Pool
func ToDomainPool(m models.Pool, memberIDs []string) domain.Pool {
	if memberIDs == nil {
		memberIDs = []string{}
	}
	return domain.Pool{
		PoolID:              m.PoolID,
		Name:                m.Name,
		ExternalReference:   m.ExternalReference,
		CurrencyCode:        m.CurrencyCode,
		Balance:             m.Balance,
		MonthlyContribution: m.MonthlyContribution,
		ApprovalThreshold:   m.ApprovalThreshold,
		RejectionThreshold:  m.RejectionThreshold,
		MemberIDs:           memberIDs,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model PoolLedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.PoolLedgerEntry {
	return models.PoolLedgerEntry{
		EntryID:      d.EntryID,
		PoolID:       d.PoolID,
		EntryType:    string(d.EntryType),
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		ClaimID:      d.ClaimID,
		MemberID:     d.MemberID,
		BalanceAfter: d.BalanceAfter,
		OccurredAt:   d.OccurredAt,
	}
}

// ToDomainLedgerEntries converts model ledger rows to domain entries
func ToDomainLedgerEntries(ms []models.PoolLedgerEntry) []domain.LedgerEntry {
	return lo.Map(ms, func(m models.PoolLedgerEntry, _ int) domain.LedgerEntry {
		return domain.LedgerEntry{
			EntryID:      m.EntryID,
			PoolID:       m.PoolID,
			EntryType:    domain.LedgerEntryType(m.EntryType),
			Amount:       m.Amount,
			CurrencyCode: m.CurrencyCode,
			ClaimID:      m.ClaimID,
			MemberID:     m.MemberID,
			BalanceAfter: m.BalanceAfter,
			OccurredAt:   m.OccurredAt,
		}
	})
}
