package eventstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	fv "github.com/fieldsafe/validator"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func TestStore_Migrate(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS fallback_events").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStore_Record(t *testing.T) {
	store, mock := newMockStore(t)

	ev := fv.Event{
		Time:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Field:    "Email",
		Pattern:  `^(a+)+b$`,
		InputLen: 4000,
		Reason:   fv.ReasonGuardrail,
	}

	mock.ExpectExec("INSERT INTO fallback_events").
		WithArgs(ev.Time, "Email", `^(a+)+b$`, 4000, "guardrail").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Record(ev); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStore_RecordError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO fallback_events").
		WillReturnError(errors.New("connection refused"))

	err := store.Record(fv.Event{Field: "Email", Reason: fv.ReasonTimeout})
	if err == nil {
		t.Fatal("Record should surface the database error")
	}
}

func TestStore_CountsByReason(t *testing.T) {
	store, mock := newMockStore(t)

	since := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"reason", "count"}).
		AddRow("guardrail", 12).
		AddRow("timeout", 3)

	mock.ExpectQuery("SELECT reason, COUNT").
		WithArgs(since).
		WillReturnRows(rows)

	counts, err := store.CountsByReason(context.Background(), since)
	if err != nil {
		t.Fatalf("CountsByReason: %v", err)
	}
	if counts[fv.ReasonGuardrail] != 12 {
		t.Errorf("guardrail count = %d; want 12", counts[fv.ReasonGuardrail])
	}
	if counts[fv.ReasonTimeout] != 3 {
		t.Errorf("timeout count = %d; want 3", counts[fv.ReasonTimeout])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStore_ImplementsEventSink(t *testing.T) {
	var _ fv.EventSink = (*Store)(nil)
}
