package repository

import (
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/models"
)

// setupMockRepo wires a TaskRepository over a sqlmock connection so
// storage failures can be simulated.
func setupMockRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	var db *sql.DB
	var mock sqlmock.Sqlmock
	var err error

	db, mock, err = sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewTaskRepository(gormDB), mock
}

func TestList_CountFailureSurfaces(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks"`).
		WillReturnError(errors.New("connection reset"))

	_, _, err := repo.List(TaskFilter{UserID: 1, Page: 1, PageSize: 6})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_StorageFailureSurfaces(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.Create(&models.Task{
		Title:    "Doomed",
		Priority: models.TaskPriorityLow,
		Status:   models.TaskStatusPending,
		UserID:   1,
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatus_FailureSurfaces(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "tasks"`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CountByStatus(1)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDForOwner_ScopesByOwner(t *testing.T) {
	repo, mock := setupMockRepo(t)

	// The lookup must carry both the id and the owner in one query; a
	// miss of either kind is the same record-not-found.
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(10), int64(2), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id"}))

	_, err := repo.FindByIDForOwner(10, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
