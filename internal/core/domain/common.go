package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Touch stamps the last-updated fields.
func (a *AuditFields) Touch(userID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = userID
}
