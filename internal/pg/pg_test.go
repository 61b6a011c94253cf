package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestTxFromContext(t *testing.T) {
	t.Run("Empty context", func(t *testing.T) {
		tx, ok := txFromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, tx)
	})

	t.Run("Context with transaction", func(t *testing.T) {
		var stored pgx.Tx
		ctx := context.WithValue(context.Background(), txKey{}, stored)
		_, ok := txFromContext(ctx)
		assert.False(t, ok, "nil interface value should not count as a transaction")
	})
}

func TestManager_Begin_Nested(t *testing.T) {
	// A Begin inside an open transaction joins it instead of opening a
	// second one, so the manager never touches the pool here.
	m := NewTXManager(nil)
	ctx := context.WithValue(context.Background(), txKey{}, fakeTx{})

	t.Run("Nested call runs fn directly", func(t *testing.T) {
		called := false
		err := m.Begin(ctx, func(ctx context.Context) error {
			called = true
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("Nested call propagates fn error", func(t *testing.T) {
		err := m.Begin(ctx, func(ctx context.Context) error {
			return errors.New("fn error")
		})
		assert.EqualError(t, err, "fn error")
	})
}

// fakeTx satisfies pgx.Tx just enough to mark a context as transactional.
type fakeTx struct {
	pgx.Tx
}
