package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestNewGormStore(t *testing.T) {
	gdb, mock := newMockDB(t)
	store := NewGormStore(gdb)

	assert.NotNil(t, store.Users)
	assert.NotNil(t, store.Bookings)
	assert.NotNil(t, store.Transactions)
	assert.NotNil(t, store.Logs)

	mock.ExpectClose()
	require.NoError(t, store.Close(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("close delegates", func(mt *mtest.T) {
		closed := false
		store := newMongoStore(mt.DB, func(context.Context) error {
			closed = true
			return nil
		})

		assert.NotNil(mt, store.Users)
		require.NoError(mt, store.Close(context.Background()))
		assert.True(mt, closed)
	})
}

func TestStore_CloseWithoutBackend(t *testing.T) {
	assert.NoError(t, (&Store{}).Close(context.Background()))
}
