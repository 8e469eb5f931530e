package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy and LastUpdatedBy hold opaque member identifiers.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Touch stamps the last-updated audit fields.
func (a *AuditFields) Touch(by string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = by
}
