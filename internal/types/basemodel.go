package types

import (
	"context"
	"time"
)

// BaseModel holds the audit columns shared by every record created through the API.
// Any changes to this model should be reflected in the database schema by running migrations
type BaseModel struct {
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GetDefaultBaseModel stamps the record with the authenticated caller.
// Client supplied values for created_by never reach this point.
func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		CreatedBy: GetUserID(ctx),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
