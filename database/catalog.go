package database

import (
	"context"

	"github.com/campusmatch/college-discovery-api/model"
	"gorm.io/gorm"
)

// CatalogReader is the read-only view of the catalog consumed by the
// discovery engine. The engine never issues writes; anything that mutates
// the catalog (migration, seeding) lives outside this interface.
type CatalogReader interface {
	// FindCollegesByStreams returns ids of colleges offering at least one
	// of the given streams (union semantics)
	FindCollegesByStreams(ctx context.Context, streamIDs []uint) ([]uint, error)

	// AllCollegeIDs returns every college id in the catalog
	AllCollegeIDs(ctx context.Context) ([]uint, error)

	// FindFeesByColleges returns fee records for the given colleges. When
	// streamIDs is non-empty, only fees for those streams or college-wide
	// fees (stream_id IS NULL) are returned.
	FindFeesByColleges(ctx context.Context, collegeIDs []uint, streamIDs []uint) ([]model.AnnualFee, error)

	// FindInterestsByColleges maps each college id to its interest ids
	FindInterestsByColleges(ctx context.Context, collegeIDs []uint) (map[uint][]uint, error)

	// FindStreamsByColleges maps each college id to its stream ids
	FindStreamsByColleges(ctx context.Context, collegeIDs []uint) (map[uint][]uint, error)

	// GetCollegesByIDs returns full college records for the given ids.
	// Ids that no longer exist are simply absent from the result.
	GetCollegesByIDs(ctx context.Context, ids []uint) ([]model.College, error)

	GetAllStreams(ctx context.Context) ([]model.Stream, error)
	GetAllInterests(ctx context.Context) ([]model.Interest, error)
}

// GORMCatalog implements CatalogReader on top of the GORM store
type GORMCatalog struct {
	db *gorm.DB
}

// NewGORMCatalog creates a catalog reader backed by GORM
func NewGORMCatalog(db *gorm.DB) *GORMCatalog {
	return &GORMCatalog{db: db}
}

func (c *GORMCatalog) FindCollegesByStreams(ctx context.Context, streamIDs []uint) ([]uint, error) {
	if len(streamIDs) == 0 {
		return []uint{}, nil
	}

	var ids []uint
	err := c.db.WithContext(ctx).
		Model(&model.CollegeStream{}).
		Where("stream_id IN ?", streamIDs).
		Distinct("college_id").
		Pluck("college_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *GORMCatalog) AllCollegeIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := c.db.WithContext(ctx).
		Model(&model.College{}).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *GORMCatalog) FindFeesByColleges(ctx context.Context, collegeIDs []uint, streamIDs []uint) ([]model.AnnualFee, error) {
	if len(collegeIDs) == 0 {
		return []model.AnnualFee{}, nil
	}

	query := c.db.WithContext(ctx).
		Model(&model.AnnualFee{}).
		Where("college_id IN ?", collegeIDs)

	// College-wide fee rows (no stream) always count toward the ceiling
	if len(streamIDs) > 0 {
		query = query.Where("stream_id IN ? OR stream_id IS NULL", streamIDs)
	}

	var fees []model.AnnualFee
	if err := query.Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

func (c *GORMCatalog) FindInterestsByColleges(ctx context.Context, collegeIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(collegeIDs))
	if len(collegeIDs) == 0 {
		return result, nil
	}

	var rows []model.CollegeInterest
	err := c.db.WithContext(ctx).
		Where("college_id IN ?", collegeIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.CollegeID] = append(result[row.CollegeID], row.InterestID)
	}
	return result, nil
}

func (c *GORMCatalog) FindStreamsByColleges(ctx context.Context, collegeIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(collegeIDs))
	if len(collegeIDs) == 0 {
		return result, nil
	}

	var rows []model.CollegeStream
	err := c.db.WithContext(ctx).
		Where("college_id IN ?", collegeIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.CollegeID] = append(result[row.CollegeID], row.StreamID)
	}
	return result, nil
}

func (c *GORMCatalog) GetCollegesByIDs(ctx context.Context, ids []uint) ([]model.College, error) {
	if len(ids) == 0 {
		return []model.College{}, nil
	}

	var colleges []model.College
	err := c.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&colleges).Error
	if err != nil {
		return nil, err
	}
	return colleges, nil
}

func (c *GORMCatalog) GetAllStreams(ctx context.Context) ([]model.Stream, error) {
	var streams []model.Stream
	err := c.db.WithContext(ctx).
		Order("id ASC").
		Find(&streams).Error
	if err != nil {
		return nil, err
	}
	return streams, nil
}

func (c *GORMCatalog) GetAllInterests(ctx context.Context) ([]model.Interest, error) {
	var interests []model.Interest
	err := c.db.WithContext(ctx).
		Order("id ASC").
		Find(&interests).Error
	if err != nil {
		return nil, err
	}
	return interests, nil
}
