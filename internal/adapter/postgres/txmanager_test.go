package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/dictionary-importer/internal/adapter/postgres"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestRunInTx_Commit(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO entry_etymologies`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := postgres.QuerierFromCtx(ctx, mock).Exec(ctx, `INSERT INTO entry_etymologies (entry_id, text) VALUES ($1, $2)`)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)
	sentinel := errors.New("write failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.RunInTx(context.Background(), func(context.Context) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin()
	mock.ExpectRollback()

	defer func() {
		if r := recover(); r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	}()

	_ = tm.RunInTx(context.Background(), func(context.Context) error { panic("test panic") })
}

func TestRunInTx_BeginError(t *testing.T) {
	t.Parallel()
	mock := newMock(t)
	tm := postgres.NewTxManager(mock)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := tm.RunInTx(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error from Begin")
	}
	if called {
		t.Error("fn must not run when Begin fails")
	}
}

func TestQuerierFromCtx_Fallback(t *testing.T) {
	t.Parallel()
	mock := newMock(t)

	if got := postgres.QuerierFromCtx(context.Background(), mock); got != mock {
		t.Errorf("QuerierFromCtx without tx = %v, want fallback", got)
	}
}
