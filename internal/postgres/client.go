package postgres

import "context"

// IClient is the transaction boundary services depend on
type IClient interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	Ping(ctx context.Context) error
}

// NewClient exposes the connection pool as an IClient
func NewClient(db *DB) IClient {
	return db
}
