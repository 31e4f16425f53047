package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

type stubTx struct {
	commits   int
	rollbacks int
}

func (t *stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *stubTx) Commit() error {
	t.commits++
	return nil
}

func (t *stubTx) Rollback() error {
	t.rollbacks++
	return nil
}

type stubBeginner struct {
	tx *stubTx
}

func (b *stubBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.tx, nil
}

func TestDoSerializable_RetriesWrappedSerializationFailure(t *testing.T) {
	tx := &stubTx{}
	m := NewTransactionManager(&stubBeginner{tx: tx})

	serErr := &pq.Error{Code: pq.ErrorCode(pqSerializationFailure)}

	// Репозиторий и usecase оборачивают причину через %w,
	// ошибка сериализации должна оставаться видимой сквозь обёртки.
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("internal error: load appointments: %w",
				fmt.Errorf("failed to execute query: %w", serErr))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 2, tx.rollbacks)
	assert.Equal(t, 1, tx.commits)
}

func TestDoSerializable_NoRetryOnOtherErrors(t *testing.T) {
	tx := &stubTx{}
	m := NewTransactionManager(&stubBeginner{tx: tx})

	boom := errors.New("constraint violation")

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestDoSerializable_GivesUpAfterRetries(t *testing.T) {
	tx := &stubTx{}
	m := NewTransactionManager(&stubBeginner{tx: tx})

	serErr := &pq.Error{Code: pq.ErrorCode(pqSerializationFailure)}

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return fmt.Errorf("failed to execute query: %w", serErr)
	})

	require.Error(t, err)
	assert.True(t, isSerializationFailure(err))
	assert.Equal(t, serializableRetries, attempts)
}
