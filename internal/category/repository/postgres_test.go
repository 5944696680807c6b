package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/termas-hotel-service/internal/category/dto"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

var categoryColumns = []string{"id", "register_type_id", "name", "description", "color", "sort_order", "is_active", "created_at", "updated_at"}

func TestDefaultForRegister(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM pos_categories\s+WHERE register_type_id = \$1 AND is_active = TRUE\s+ORDER BY sort_order ASC`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow("c1", 2, "Cocina", nil, nil, 0, true, now, now))

	cat, err := repo.DefaultForRegister(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "Cocina", cat.Name)

	mock.ExpectQuery(`SELECT \* FROM pos_categories`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	cat, err = repo.DefaultForRegister(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, cat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAll_RegisterAndActiveFilters(t *testing.T) {
	repo, mock := newRepo(t)
	active := true

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM pos_categories WHERE register_type_id = $1 AND is_active = $2`)).
		WithArgs(1, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectPrepare(regexp.QuoteMeta(`SELECT * FROM pos_categories WHERE register_type_id = $1 AND is_active = $2 ORDER BY register_type_id, sort_order ASC, name ASC LIMIT 20 OFFSET 0`)).
		ExpectQuery().
		WithArgs(1, true).
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow("c1", 1, "Spa", nil, nil, 0, true, time.Now(), time.Now()))

	items, count, err := repo.FindAll(context.Background(), &dto.CategoryFilters{RegisterTypeID: 1, IsActive: &active, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
