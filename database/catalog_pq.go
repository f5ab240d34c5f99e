package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/campusmatch/college-discovery-api/config"
	"github.com/campusmatch/college-discovery-api/model"
	"github.com/lib/pq"
)

// PQCatalog implements CatalogReader with hand-written SQL over lib/pq.
// It is interchangeable with GORMCatalog; CATALOG_DRIVER picks one.
type PQCatalog struct {
	db *sql.DB
}

// NewPQCatalog wraps an existing sql.DB connection
func NewPQCatalog(db *sql.DB) *PQCatalog {
	return &PQCatalog{db: db}
}

// StartPQ opens a raw PostgreSQL connection from the environment
func StartPQ() (*PQCatalog, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	connectStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv.DB_HOST, getEnv.DB_PORT, getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD, getEnv.DB_NAME, getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL Database (pq).")
	return &PQCatalog{db: db}, nil
}

// Close closes the underlying connection
func (c *PQCatalog) Close() error {
	return c.db.Close()
}

// HealthCheck verifies the database connection is alive
func (c *PQCatalog) HealthCheck() error {
	return c.db.Ping()
}

func (c *PQCatalog) FindCollegesByStreams(ctx context.Context, streamIDs []uint) ([]uint, error) {
	if len(streamIDs) == 0 {
		return []uint{}, nil
	}

	query := `SELECT DISTINCT college_id FROM college_streams WHERE stream_id = ANY($1)`
	rows, err := c.db.QueryContext(ctx, query, pq.Array(toInt64(streamIDs)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (c *PQCatalog) AllCollegeIDs(ctx context.Context) ([]uint, error) {
	query := `SELECT id FROM colleges WHERE deleted_at IS NULL`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (c *PQCatalog) FindFeesByColleges(ctx context.Context, collegeIDs []uint, streamIDs []uint) ([]model.AnnualFee, error) {
	if len(collegeIDs) == 0 {
		return []model.AnnualFee{}, nil
	}

	query := `SELECT id, college_id, stream_id, amount FROM annual_fees
		WHERE deleted_at IS NULL AND college_id = ANY($1)`
	args := []interface{}{pq.Array(toInt64(collegeIDs))}

	if len(streamIDs) > 0 {
		query += ` AND (stream_id = ANY($2) OR stream_id IS NULL)`
		args = append(args, pq.Array(toInt64(streamIDs)))
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fees := []model.AnnualFee{}
	for rows.Next() {
		var fee model.AnnualFee
		var streamID sql.NullInt64
		if err := rows.Scan(&fee.ID, &fee.CollegeID, &streamID, &fee.Amount); err != nil {
			return nil, err
		}
		if streamID.Valid {
			id := uint(streamID.Int64)
			fee.StreamID = &id
		}
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

func (c *PQCatalog) FindInterestsByColleges(ctx context.Context, collegeIDs []uint) (map[uint][]uint, error) {
	if len(collegeIDs) == 0 {
		return map[uint][]uint{}, nil
	}

	query := `SELECT college_id, interest_id FROM college_interests WHERE college_id = ANY($1)`
	rows, err := c.db.QueryContext(ctx, query, pq.Array(toInt64(collegeIDs)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAdjacency(rows)
}

func (c *PQCatalog) FindStreamsByColleges(ctx context.Context, collegeIDs []uint) (map[uint][]uint, error) {
	if len(collegeIDs) == 0 {
		return map[uint][]uint{}, nil
	}

	query := `SELECT college_id, stream_id FROM college_streams WHERE college_id = ANY($1)`
	rows, err := c.db.QueryContext(ctx, query, pq.Array(toInt64(collegeIDs)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAdjacency(rows)
}

func (c *PQCatalog) GetCollegesByIDs(ctx context.Context, ids []uint) ([]model.College, error) {
	if len(ids) == 0 {
		return []model.College{}, nil
	}

	query := `SELECT id, code, name, address, city, state, pincode, phone, email,
		website, type, affiliation, established_year, description, average_rating, cover_image
		FROM colleges WHERE deleted_at IS NULL AND id = ANY($1)`

	rows, err := c.db.QueryContext(ctx, query, pq.Array(toInt64(ids)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colleges := []model.College{}
	for rows.Next() {
		college, err := scanIntoCollege(rows)
		if err != nil {
			return nil, err
		}
		colleges = append(colleges, *college)
	}
	return colleges, rows.Err()
}

func (c *PQCatalog) GetAllStreams(ctx context.Context) ([]model.Stream, error) {
	query := `SELECT id, code, name, description FROM streams WHERE deleted_at IS NULL ORDER BY id ASC`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	streams := []model.Stream{}
	for rows.Next() {
		var s model.Stream
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		streams = append(streams, s)
	}
	return streams, rows.Err()
}

func (c *PQCatalog) GetAllInterests(ctx context.Context) ([]model.Interest, error) {
	query := `SELECT id, name, category, icon, description FROM interests WHERE deleted_at IS NULL ORDER BY id ASC`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interests := []model.Interest{}
	for rows.Next() {
		var i model.Interest
		if err := rows.Scan(&i.ID, &i.Name, &i.Category, &i.Icon, &i.Description); err != nil {
			return nil, err
		}
		interests = append(interests, i)
	}
	return interests, rows.Err()
}

func scanIntoCollege(rows *sql.Rows) (*model.College, error) {
	college := new(model.College)
	err := rows.Scan(
		&college.ID,
		&college.Code,
		&college.Name,
		&college.Address,
		&college.City,
		&college.State,
		&college.Pincode,
		&college.Phone,
		&college.Email,
		&college.Website,
		&college.Type,
		&college.Affiliation,
		&college.EstablishedYear,
		&college.Description,
		&college.AverageRating,
		&college.CoverImage,
	)
	if err != nil {
		return nil, err
	}
	return college, nil
}

func scanIDs(rows *sql.Rows) ([]uint, error) {
	ids := []uint{}
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanAdjacency(rows *sql.Rows) (map[uint][]uint, error) {
	result := map[uint][]uint{}
	for rows.Next() {
		var left, right uint
		if err := rows.Scan(&left, &right); err != nil {
			return nil, err
		}
		result[left] = append(result[left], right)
	}
	return result, rows.Err()
}

func toInt64(ids []uint) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
