// AngelaMos | 2026
// repository_test.go

package entry

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/journal-backend/internal/core"
)

var entryRowColumns = []string{
	"id", "user_id", "date", "mood", "entry", "location", "weather", "updated_at",
}

const pointJSON = `{"type":"Point","coordinates":[13.4,52.5]}`

func newRepoWithMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPoint_ScanAndValue(t *testing.T) {
	var p Point
	require.NoError(t, p.Scan([]byte(pointJSON)))
	assert.Equal(t, PointType, p.Type)
	assert.Equal(t, []float64{13.4, 52.5}, p.Coordinates)

	v, err := p.Value()
	require.NoError(t, err)
	assert.JSONEq(t, pointJSON, string(v.([]byte)))

	assert.Error(t, p.Scan(42))
	assert.Error(t, p.Scan("{"))
}

func TestPoint_RejectsNullCoordinates(t *testing.T) {
	var p Point
	assert.Error(t, p.Scan(`{"type":"Point","coordinates":[null,null]}`))
	assert.Error(t, p.Scan(`{"type":"Point","coordinates":[13.4,null]}`))

	require.NoError(t, p.Scan(`{"type":"Point"}`))
	assert.Nil(t, p.Coordinates)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	e := &Entry{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Mood:     "calm",
		Entry:    "walked by the river",
		Location: Point{Type: PointType, Coordinates: []float64{13.4, 52.5}},
	}

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+entries\s*\(id,\s*user_id,\s*mood,\s*entry,\s*location,\s*weather\).*RETURNING\s+date,\s*updated_at`).
		WithArgs(e.ID.String(), e.UserID.String(), "calm", "walked by the river", sqlmock.AnyArg(), nil).
		WillReturnRows(sqlmock.NewRows([]string{"date", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.Create(context.Background(), e))
	assert.Equal(t, now, e.Date)
	assert.Equal(t, now, e.UpdatedAt)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id, owner := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*user_id.*FROM\s+entries\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(entryRowColumns).
			AddRow(id.String(), owner.String(), now, "calm", "text", []byte(pointJSON), "sunny", now))

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, owner, got.UserID)
	assert.Equal(t, []float64{13.4, 52.5}, got.Location.Coordinates)
	require.NotNil(t, got.Weather)
	assert.Equal(t, "sunny", *got.Weather)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+entries\s+WHERE\s+id`).
		WillReturnRows(sqlmock.NewRows(entryRowColumns))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	owner := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM\s+entries\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+date\s+DESC`).
		WithArgs(owner.String()).
		WillReturnRows(sqlmock.NewRows(entryRowColumns).
			AddRow(uuid.NewString(), owner.String(), now, "calm", "b", []byte(pointJSON), nil, now).
			AddRow(uuid.NewString(), owner.String(), now.Add(-time.Hour), "sad", "a", []byte(pointJSON), nil, now))

	got, err := repo.ListByUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Entry)
	assert.Nil(t, got[0].Weather)
}

func TestRepository_Update_ScopedToOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	weather := "rain"
	e := &Entry{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Mood:     "tired",
		Entry:    "long day",
		Location: Point{Type: PointType, Coordinates: []float64{1, 2}},
		Weather:  &weather,
	}

	mock.ExpectQuery(`(?s)UPDATE\s+entries.*WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs(e.ID.String(), e.UserID.String(), "tired", "long day", sqlmock.AnyArg(), "rain").
		WillReturnRows(sqlmock.NewRows([]string{"date", "updated_at"}))

	err := repo.Update(context.Background(), e)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectExec(`DELETE\s+FROM\s+entries\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs(id.String(), owner.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), id, owner))

	mock.ExpectExec(`DELETE\s+FROM\s+entries`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id, owner), core.ErrNotFound)
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+entries`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}
