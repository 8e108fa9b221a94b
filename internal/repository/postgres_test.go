package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hitechhomes/internal/model"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepositoryFromDB(sqlx.NewDb(db, "sqlmock")), mock
}

func propertyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "price", "bhk", "bathrooms", "city",
		"address", "area", "amenities", "images", "created_at",
	})
}

func addPropertyRow(rows *sqlmock.Rows, id int64, title string, price float64, bhk int, city string) *sqlmock.Rows {
	return rows.AddRow(
		id, title, price, bhk, 2, city,
		"MG Road", "1200 sq ft", []byte(`["Parking","Gym"]`), []byte(`[{"url":"a.jpg"}]`), time.Now(),
	)
}

func TestFindProperties_CombinesConditionsWithAnd(t *testing.T) {
	repo, mock := newMockRepo(t)

	bhk := 2
	maxPrice := 6000000.0
	city := "Pune"

	mock.ExpectQuery(`SELECT (.+) FROM properties WHERE 1=1 AND bhk = \$1 AND price <= \$2 AND city ILIKE \$3 ORDER BY price ASC LIMIT \$4 OFFSET \$5`).
		WithArgs(bhk, maxPrice, "%Pune%", 3, 0).
		WillReturnRows(addPropertyRow(propertyRows(), 1, "Sunrise Towers", 4500000, 2, "Pune"))

	got, err := repo.FindProperties(context.Background(), model.PropertyFilter{
		BHK:      &bhk,
		PriceMax: &maxPrice,
		City:     &city,
		Sort:     model.SortPriceAsc,
		Limit:    3,
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sunrise Towers", got[0].Title)
	assert.Equal(t, []string{"Parking", "Gym"}, []string(got[0].Amenities))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindProperties_BHKInUsesArrayBinding(t *testing.T) {
	repo, mock := newMockRepo(t)

	maxPrice := 5000000.0
	mock.ExpectQuery(`SELECT (.+) FROM properties WHERE 1=1 AND bhk = ANY\(\$1\) AND price <= \$2 ORDER BY bhk ASC, price ASC LIMIT \$3 OFFSET \$4`).
		WithArgs(pq.Array([]int{2, 4}), maxPrice, 3, 0).
		WillReturnRows(propertyRows())

	got, err := repo.FindProperties(context.Background(), model.PropertyFilter{
		BHKIn:    []int{2, 4},
		PriceMax: &maxPrice,
		Sort:     model.SortBHKPriceAsc,
		Limit:    3,
	})

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindProperties_DefaultsToNewestWithLimit20(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM properties WHERE 1=1 ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(propertyRows())

	_, err := repo.FindProperties(context.Background(), model.PropertyFilter{})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountProperties(t *testing.T) {
	repo, mock := newMockRepo(t)

	city := "Mumbai"
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM properties WHERE 1=1 AND city ILIKE \$1`).
		WithArgs("%Mumbai%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	total, err := repo.CountProperties(context.Background(), model.PropertyFilter{City: &city})

	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentProperties(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := propertyRows()
	addPropertyRow(rows, 2, "Lake View", 4800000, 2, "Pune")
	addPropertyRow(rows, 1, "Sunrise Towers", 4500000, 2, "Pune")

	mock.ExpectQuery(`SELECT (.+) FROM properties ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(5).
		WillReturnRows(rows)

	got, err := repo.RecentProperties(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPropertyByID_NotFoundReturnsNil(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM properties WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetPropertyByID(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEnquiry(t *testing.T) {
	repo, mock := newMockRepo(t)

	propertyID := int64(7)
	mock.ExpectExec(`INSERT INTO enquiries \(name, email, phone, message, property_id\)`).
		WithArgs("Asha", "asha@example.com", "9876543210", "Interested in a site visit", propertyID).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.InsertEnquiry(context.Background(), model.EnquiryRequest{
		Name:       "Asha",
		Email:      "asha@example.com",
		Phone:      "9876543210",
		Message:    "Interested in a site visit",
		PropertyID: &propertyID,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogChat(t *testing.T) {
	repo, mock := newMockRepo(t)

	bhk := 2
	mock.ExpectExec(`INSERT INTO chat_logs \(id, message, intent, result_state, result_count, response_time_ms\)`).
		WithArgs("log-1", "2 bhk under 50 lakh", sqlmock.AnyArg(), "NO_RESULTS", 0, int64(12)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.LogChat(context.Background(), model.ChatLog{
		ID:             "log-1",
		Message:        "2 bhk under 50 lakh",
		Intent:         model.ParsedIntent{BHK: &bhk},
		ResultState:    model.StateNoResults,
		ResultCount:    0,
		ResponseTimeMs: 12,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChatStats(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM chat_logs`).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_messages", "exact_matches", "alternatives", "no_results", "avg_response_time_ms",
		}).AddRow(100, 60, 25, 15, 84.5))

	stats, err := repo.GetChatStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(100), stats.TotalMessages)
	assert.Equal(t, int64(60), stats.ExactMatches)
	assert.Equal(t, int64(25), stats.Alternatives)
	assert.Equal(t, int64(15), stats.NoResults)
	assert.InDelta(t, 84.5, stats.AvgResponseTime, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "price ASC", orderClause(model.SortPriceAsc))
	assert.Equal(t, "bhk ASC, price ASC", orderClause(model.SortBHKPriceAsc))
	assert.Equal(t, "created_at DESC", orderClause(model.SortNewest))
	assert.Equal(t, "created_at DESC", orderClause(model.SortOrder("bogus")))
}
