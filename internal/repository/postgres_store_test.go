package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentsMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	store := NewPostgresStore(sqlx.NewDb(db, "sqlmock"))
	store.now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }
	return store, mock, func() { db.Close() }
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock, cleanup := newDocumentsMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM documents WHERE collection = $1 AND id = $2")).
		WithArgs("courses", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"name":"Calculus","code":"MT-101"}`)))

	var course struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	require.NoError(t, store.Get(context.Background(), "courses", "c1", &course))
	assert.Equal(t, "Calculus", course.Name)
	assert.Equal(t, "MT-101", course.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetNotFound(t *testing.T) {
	store, mock, cleanup := newDocumentsMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM documents WHERE collection = $1 AND id = $2")).
		WithArgs("courses", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	var dest map[string]interface{}
	err := store.Get(context.Background(), "courses", "missing", &dest)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreList(t *testing.T) {
	store, mock, cleanup := newDocumentsMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, data FROM documents WHERE collection = $1 ORDER BY id")).
		WithArgs("assignCourses").
		WillReturnRows(sqlmock.NewRows([]string{"id", "data"}).
			AddRow("a1", []byte(`{"courseId":"c1"}`)).
			AddRow("a2", []byte(`{"courseId":"c2"}`)))

	docs, err := store.List(context.Background(), "assignCourses")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a2", docs[1].ID)
	assert.JSONEq(t, `{"courseId":"c2"}`, string(docs[1].Data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorePut(t *testing.T) {
	store, mock, cleanup := newDocumentsMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO documents").
		WithArgs("classes", "k1", []byte(`{"name":"BSCS-5A"}`), store.now().UTC()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Put(context.Background(), "classes", "k1", map[string]string{"name": "BSCS-5A"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreUpdateMissing(t *testing.T) {
	store, mock, cleanup := newDocumentsMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET data = data || $3::jsonb")).
		WithArgs("students", "ghost", []byte(`{"city":"Lahore"}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Update(context.Background(), "students", "ghost", map[string]interface{}{"city": "Lahore"})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreArrayUnion(t *testing.T) {
	store, mock, cleanup := newDocumentsMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE")).
		WithArgs("students", "stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"enrolledCourses":["a1"]}`)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET data = $3, updated_at = $4")).
		WithArgs("students", "stu-1", []byte(`{"enrolledCourses":["a1","a2"]}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.ArrayUnion(context.Background(), "students", "stu-1", "enrolledCourses", "a1", "a2")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreArrayUnionMissingRollsBack(t *testing.T) {
	store, mock, cleanup := newDocumentsMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("students", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))
	mock.ExpectRollback()

	err := store.ArrayUnion(context.Background(), "students", "ghost", "enrolledCourses", "a1")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreArrayUnionQueryFailure(t *testing.T) {
	store, mock, cleanup := newDocumentsMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := store.ArrayUnion(context.Background(), "students", "stu-1", "enrolledCourses", "a1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
