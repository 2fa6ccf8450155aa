package domain

import "time"

// AuditKind classifies a recorded security event.
type AuditKind string

const (
	AuditSuspiciousToken AuditKind = "suspicious_token"
	AuditLoginFailed     AuditKind = "login_failed"
	AuditLoginLocked     AuditKind = "login_locked"
	AuditLoginThrottled  AuditKind = "login_throttled"
	AuditUserDeleted     AuditKind = "user_deleted"
)

// AuditEvent is an append-only security observation. Events are recorded
// off the request path; losing one never fails the request that raised it.
type AuditEvent struct {
	Kind      AuditKind `json:"kind"`
	Subject   string    `json:"subject,omitempty"`
	Email     string    `json:"email,omitempty"`
	RemoteIP  string    `json:"remote_ip,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ShardKey groups events of the same actor onto the same worker so their
// relative order is preserved.
func (e AuditEvent) ShardKey() string {
	if e.Subject != "" {
		return e.Subject
	}
	return e.Email
}
