package model

import (
	"time"
)

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AdminAuditLog records one admin write against a CMS resource
type AdminAuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AdminID     uint      `gorm:"not null;index" json:"admin_id"`
	Action      string    `gorm:"type:varchar(20);not null" json:"action"`          // create, update, delete
	Resource    string    `gorm:"type:varchar(100);not null;index" json:"resource"` // e.g. "programs", "news"
	ResourceID  uint      `json:"resource_id"`
	StatusCode  int       `json:"status_code"`
	IPAddress   string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent   string    `gorm:"type:text" json:"user_agent"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AdminAuditLog
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
