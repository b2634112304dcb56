package mocks

import (
	"github.com/stretchr/testify/mock"

	"fittrack-server/internal/interfaces"
)

// MockDatabaseManager is a testify mock of the database manager, returning a
// pgxmock pool in tests.
type MockDatabaseManager struct {
	mock.Mock
}

func (m *MockDatabaseManager) GetPool() interfaces.PgxPoolIface {
	args := m.Called()
	return args.Get(0).(interfaces.PgxPoolIface)
}
