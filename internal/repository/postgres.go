package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hitechhomes/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const propertyColumns = `id, title, price, bhk, bathrooms, city, address, area, amenities, images, created_at`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection, used in tests
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// FindProperties executes a structured filter against the properties table.
// Conditions combine with AND; nil fields are skipped.
func (r *PostgresRepository) FindProperties(ctx context.Context, f model.PropertyFilter) ([]model.Property, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if f.BHK != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("bhk = $%d", argIndex))
		args = append(args, *f.BHK)
		argIndex++
	}
	if len(f.BHKIn) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("bhk = ANY($%d)", argIndex))
		args = append(args, pq.Array(f.BHKIn))
		argIndex++
	}
	if f.PriceMin != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *f.PriceMin)
		argIndex++
	}
	if f.PriceMax != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *f.PriceMax)
		argIndex++
	}
	if f.City != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("city ILIKE $%d", argIndex))
		args = append(args, "%"+*f.City+"%")
		argIndex++
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, propertyColumns, strings.Join(whereClauses, " AND "), orderClause(f.Sort), argIndex, argIndex+1)
	args = append(args, limit, f.Offset)

	var properties []model.Property
	if err := r.db.SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}

	return properties, nil
}

// CountProperties returns the total number of rows matching the filter
func (r *PostgresRepository) CountProperties(ctx context.Context, f model.PropertyFilter) (int, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if f.BHK != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("bhk = $%d", argIndex))
		args = append(args, *f.BHK)
		argIndex++
	}
	if f.PriceMin != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *f.PriceMin)
		argIndex++
	}
	if f.PriceMax != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *f.PriceMax)
		argIndex++
	}
	if f.City != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("city ILIKE $%d", argIndex))
		args = append(args, "%"+*f.City+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties WHERE %s", strings.Join(whereClauses, " AND "))
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return total, nil
}

// RecentProperties returns the most recently created listings
func (r *PostgresRepository) RecentProperties(ctx context.Context, limit int) ([]model.Property, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		ORDER BY created_at DESC
		LIMIT $1
	`, propertyColumns)

	var properties []model.Property
	if err := r.db.SelectContext(ctx, &properties, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch recent properties: %w", err)
	}
	return properties, nil
}

// GetPropertyByID retrieves a single property, nil when not found
func (r *PostgresRepository) GetPropertyByID(ctx context.Context, id int64) (*model.Property, error) {
	var property model.Property
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = $1", propertyColumns)
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &property, nil
}

// InsertEnquiry stores a visitor contact request
func (r *PostgresRepository) InsertEnquiry(ctx context.Context, e model.EnquiryRequest) error {
	query := `
		INSERT INTO enquiries (name, email, phone, message, property_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, e.Name, e.Email, e.Phone, e.Message, e.PropertyID)
	if err != nil {
		return fmt.Errorf("failed to insert enquiry: %w", err)
	}
	return nil
}

// LogChat records one chatbot turn
func (r *PostgresRepository) LogChat(ctx context.Context, entry model.ChatLog) error {
	intentJSON, err := json.Marshal(entry.Intent)
	if err != nil {
		return fmt.Errorf("failed to marshal intent: %w", err)
	}

	query := `
		INSERT INTO chat_logs (id, message, intent, result_state, result_count, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.Message, intentJSON, string(entry.ResultState), entry.ResultCount, entry.ResponseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log chat: %w", err)
	}
	return nil
}

// GetChatStats returns aggregate chatbot counters for the dashboard
func (r *PostgresRepository) GetChatStats(ctx context.Context) (*model.ChatStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_messages,
			COUNT(*) FILTER (WHERE result_state = 'EXACT_MATCH') AS exact_matches,
			COUNT(*) FILTER (WHERE result_state = 'ALTERNATIVES') AS alternatives,
			COUNT(*) FILTER (WHERE result_state = 'NO_RESULTS') AS no_results,
			COALESCE(AVG(response_time_ms), 0) AS avg_response_time_ms
		FROM chat_logs
	`
	var stats model.ChatStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get chat stats: %w", err)
	}
	return &stats, nil
}

func orderClause(s model.SortOrder) string {
	switch s {
	case model.SortPriceAsc:
		return "price ASC"
	case model.SortBHKPriceAsc:
		return "bhk ASC, price ASC"
	default:
		return "created_at DESC"
	}
}
