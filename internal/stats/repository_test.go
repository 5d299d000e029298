package stats

import (
	"fmt"
	"strings"
	"testing"

	"union-backend/internal/database"
	"union-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestGetReturnsSeededZeros(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	row, err := repo.Get()
	require.NoError(t, err)
	assert.EqualValues(t, 1, row.ID)
	assert.Zero(t, row.ProjectsCount)
	assert.Zero(t, row.PaymentsCount)
	assert.Zero(t, row.ChoiceCount)
}

func TestGetRecreatesMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, db.Delete(&models.MainPageStats{}, 1).Error)

	row, err := repo.Get()
	require.NoError(t, err)
	assert.EqualValues(t, 1, row.ID)
	assert.Zero(t, row.ProjectsCount)
}

func TestPartialUpdateKeepsOtherCounters(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	projects, payments := 12, 340
	_, err := repo.Update(UpdateFields{ProjectsCount: &projects, PaymentsCount: &payments})
	require.NoError(t, err)

	choice := 7
	row, err := repo.Update(UpdateFields{ChoiceCount: &choice})
	require.NoError(t, err)

	assert.Equal(t, 12, row.ProjectsCount)
	assert.Equal(t, 340, row.PaymentsCount)
	assert.Equal(t, 7, row.ChoiceCount)

	// Still one row, still id 1.
	var count int64
	require.NoError(t, repo.db.Model(&models.MainPageStats{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
