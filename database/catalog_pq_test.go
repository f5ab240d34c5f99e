package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockCatalog(t *testing.T) (*PQCatalog, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPQCatalog(db), mock
}

func TestPQFindCollegesByStreams(t *testing.T) {
	catalog, mock := newMockCatalog(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT college_id FROM college_streams WHERE stream_id = ANY($1)`)).
		WillReturnRows(sqlmock.NewRows([]string{"college_id"}).AddRow(1).AddRow(3))

	ids, err := catalog.FindCollegesByStreams(context.Background(), []uint{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPQFindCollegesByStreamsEmptyInput(t *testing.T) {
	catalog, mock := newMockCatalog(t)

	// No query should be issued for an empty stream set
	ids, err := catalog.FindCollegesByStreams(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPQAllCollegeIDs(t *testing.T) {
	catalog, mock := newMockCatalog(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM colleges WHERE deleted_at IS NULL`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3))

	ids, err := catalog.AllCollegeIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, ids)
}

func TestPQFindFeesByColleges(t *testing.T) {
	catalog, mock := newMockCatalog(t)

	rows := sqlmock.NewRows([]string{"id", "college_id", "stream_id", "amount"}).
		AddRow(1, 1, nil, 28000.0).
		AddRow(2, 1, 4, 45000.0)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, college_id, stream_id, amount FROM annual_fees`)).
		WillReturnRows(rows)

	fees, err := catalog.FindFeesByColleges(context.Background(), []uint{1}, nil)
	require.NoError(t, err)
	require.Len(t, fees, 2)

	// NULL stream_id means a college-wide fee
	assert.Nil(t, fees[0].StreamID)
	assert.Equal(t, 28000.0, fees[0].Amount)
	require.NotNil(t, fees[1].StreamID)
	assert.Equal(t, uint(4), *fees[1].StreamID)
}

func TestPQFindFeesByCollegesStreamScoped(t *testing.T) {
	catalog, mock := newMockCatalog(t)

	mock.ExpectQuery(regexp.QuoteMeta(`AND (stream_id = ANY($2) OR stream_id IS NULL)`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "college_id", "stream_id", "amount"}))

	_, err := catalog.FindFeesByColleges(context.Background(), []uint{1}, []uint{4})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPQFindInterestsByColleges(t *testing.T) {
	catalog, mock := newMockCatalog(t)

	rows := sqlmock.NewRows([]string{"college_id", "interest_id"}).
		AddRow(1, 10).
		AddRow(1, 11).
		AddRow(2, 10)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT college_id, interest_id FROM college_interests`)).
		WillReturnRows(rows)

	adjacency, err := catalog.FindInterestsByColleges(context.Background(), []uint{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []uint{10, 11}, adjacency[1])
	assert.Equal(t, []uint{10}, adjacency[2])
}

func TestPQGetCollegesByIDs(t *testing.T) {
	catalog, mock := newMockCatalog(t)

	rows := sqlmock.NewRows([]string{
		"id", "code", "name", "address", "city", "state", "pincode", "phone", "email",
		"website", "type", "affiliation", "established_year", "description", "average_rating", "cover_image",
	}).AddRow(
		1, "STX-MUM", "St. Xavier's College Mumbai", "5 Mahapalika Marg", "Mumbai", "Maharashtra",
		"400001", "", "", "", "Autonomous", "University of Mumbai", 1869, "", 4.5, "",
	)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM colleges WHERE deleted_at IS NULL AND id = ANY($1)`)).
		WillReturnRows(rows)

	colleges, err := catalog.GetCollegesByIDs(context.Background(), []uint{1})
	require.NoError(t, err)
	require.Len(t, colleges, 1)
	assert.Equal(t, "STX-MUM", colleges[0].Code)
	assert.Equal(t, "Mumbai", colleges[0].City)
	assert.Equal(t, 4.5, colleges[0].AverageRating)
	assert.Equal(t, 1869, colleges[0].EstablishedYear)
}

func TestPQGetAllStreams(t *testing.T) {
	catalog, mock := newMockCatalog(t)

	rows := sqlmock.NewRows([]string{"id", "code", "name", "description"}).
		AddRow(1, "ENG", "Engineering", "").
		AddRow(2, "COM", "Commerce", "")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, code, name, description FROM streams`)).
		WillReturnRows(rows)

	streams, err := catalog.GetAllStreams(context.Background())
	require.NoError(t, err)
	require.Len(t, streams, 2)
	assert.Equal(t, "Engineering", streams[0].Name)
}

func TestPQQueryErrorPropagates(t *testing.T) {
	catalog, mock := newMockCatalog(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM colleges`)).
		WillReturnError(errors.New("connection refused"))

	_, err := catalog.AllCollegeIDs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
