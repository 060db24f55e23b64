package testutil

import (
	"context"

	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient is a mock implementation of postgres client for testing
type MockPostgresClient struct {
	logger  *logger.Logger
	txs     int
	pingErr error
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function without a real transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.txs++
	return fn(ctx)
}

// Transactions reports how many transactions were opened
func (c *MockPostgresClient) Transactions() int {
	return c.txs
}

func (c *MockPostgresClient) Ping(_ context.Context) error {
	return c.pingErr
}

// SetPingError makes Ping fail until reset with nil
func (c *MockPostgresClient) SetPingError(err error) {
	c.pingErr = err
}
