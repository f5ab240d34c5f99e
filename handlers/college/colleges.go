package college

import (
	"strconv"

	"github.com/campusmatch/college-discovery-api/model"
	"github.com/campusmatch/college-discovery-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CollegeHandler handles college catalog browsing requests
type CollegeHandler struct {
	db *gorm.DB
}

// NewCollegeHandler creates a new college handler
func NewCollegeHandler(db *gorm.DB) *CollegeHandler {
	return &CollegeHandler{db: db}
}

// ListColleges handles GET /api/v1/colleges
func (h *CollegeHandler) ListColleges(c *fiber.Ctx) error {
	// Parse query parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")
	city := c.Query("city", "")
	state := c.Query("state", "")
	collegeType := c.Query("type", "")

	// Build query
	query := h.db.WithContext(c.Context()).Model(&model.College{})

	// Apply filters
	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	if city != "" {
		query = query.Where("LOWER(city) = LOWER(?)", city)
	}
	if state != "" {
		query = query.Where("LOWER(state) = LOWER(?)", state)
	}
	if collegeType != "" {
		query = query.Where("type = ?", collegeType)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count colleges")
	}

	// Calculate pagination
	pagination := response.CalculatePagination(page, limit, total)

	// A page past the end is an empty list; a negative offset would make
	// the store silently serve page 1 instead
	offset := listOffset(pagination.CurrentPage, pagination.PerPage, total)
	if offset < 0 {
		return response.Paginated(c, []model.College{}, pagination)
	}

	// Get colleges with pagination
	var colleges []model.College
	if err := query.Order("average_rating DESC, id ASC").
		Limit(pagination.PerPage).
		Offset(offset).
		Find(&colleges).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch colleges")
	}

	return response.Paginated(c, colleges, pagination)
}

// listOffset returns the row offset for a page, or -1 when the page starts
// past the end. The bound is checked before the multiply so huge page
// numbers cannot overflow the offset.
func listOffset(page, perPage int, total int64) int {
	if page-1 > int(total)/perPage {
		return -1
	}
	return (page - 1) * perPage
}

// GetCollege handles GET /api/v1/colleges/:id
func (h *CollegeHandler) GetCollege(c *fiber.Ctx) error {
	id := c.Params("id")

	var college model.College
	err := h.db.WithContext(c.Context()).
		Preload("Streams").
		Preload("Interests").
		Preload("Fees").
		First(&college, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "College not found")
		}
		return response.InternalServerError(c, "Failed to fetch college")
	}

	return response.Success(c, college)
}
