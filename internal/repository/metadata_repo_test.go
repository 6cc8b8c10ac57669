package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMetadataGet_MissingKeyIsNotAnError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewMetadataSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectMetadataSQL)).
		WithArgs(MetadataKeyFileNames).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	value, ok, err := repo.Get(ctx(t), MetadataKeyFileNames)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("missing key: got %q ok=%v, want empty and ok=false", value, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestMetadataGet_ReturnsStoredValue(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewMetadataSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectMetadataSQL)).
		WithArgs(MetadataKeyFileNames).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`["a.csv","b.csv"]`))

	value, ok, err := repo.Get(ctx(t), MetadataKeyFileNames)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || value != `["a.csv","b.csv"]` {
		t.Fatalf("got %q ok=%v", value, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestMetadataSet_Upserts(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewMetadataSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO metadata")).
		WithArgs(MetadataKeyFileNames, `["a.csv"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Set(ctx(t), MetadataKeyFileNames, `["a.csv"]`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
