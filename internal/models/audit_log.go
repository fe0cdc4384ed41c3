package models

// AuditLog records a user-visible action against a resource for
// troubleshooting. Changes holds a JSON object describing the mutation.
type AuditLog struct {
	Base
	Action       string `gorm:"not null;index" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `gorm:"type:uuid" json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `gorm:"type:text" json:"changes"`
}
