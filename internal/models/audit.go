package models

import "time"

// AuditAction enumerates student-initiated mutations.
type AuditAction string

const (
	AuditActionLogin         AuditAction = "LOGIN"
	AuditActionEnroll        AuditAction = "ENROLL"
	AuditActionWithdraw      AuditAction = "WITHDRAW"
	AuditActionProfileUpdate AuditAction = "PROFILE_UPDATE"
)

// AuditLog is written to the auditLogs collection.
type AuditLog struct {
	ID         string      `json:"-"`
	StudentID  string      `json:"studentId"`
	Action     AuditAction `json:"action"`
	Resource   string      `json:"resource"`
	ResourceID string      `json:"resourceId,omitempty"`
	IPAddress  string      `json:"ip,omitempty"`
	UserAgent  string      `json:"userAgent,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// RequestMeta describes the client issuing a mutation.
type RequestMeta struct {
	IP        string
	UserAgent string
}
