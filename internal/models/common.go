package models

import "time"

// AuditFields holds the common creation and modification columns.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
