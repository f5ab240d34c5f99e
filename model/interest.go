package model

import (
	"time"

	"gorm.io/gorm"
)

// InterestCategory is the fixed taxonomy an interest belongs to
type InterestCategory string

const (
	InterestCategorySports       InterestCategory = "sports"
	InterestCategoryArts         InterestCategory = "arts"
	InterestCategoryTechnology   InterestCategory = "technology"
	InterestCategoryAcademic     InterestCategory = "academic"
	InterestCategorySocial       InterestCategory = "social"
	InterestCategoryClubs        InterestCategory = "clubs"
	InterestCategoryProfessional InterestCategory = "professional"
)

// ValidInterestCategories lists every accepted category value
var ValidInterestCategories = []InterestCategory{
	InterestCategorySports,
	InterestCategoryArts,
	InterestCategoryTechnology,
	InterestCategoryAcademic,
	InterestCategorySocial,
	InterestCategoryClubs,
	InterestCategoryProfessional,
}

// Interest represents an extracurricular, cultural or technical offering
// that colleges can be tagged with (e.g., Cricket, Debates, Robotics)
type Interest struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
	Name        string           `gorm:"uniqueIndex;not null" json:"name"`
	Category    InterestCategory `gorm:"type:varchar(20);index" json:"category"`
	Icon        string           `gorm:"type:varchar(50)" json:"icon,omitempty"`
	Description string           `gorm:"type:text" json:"description"`
}

// CollegeInterest tags a college with an interest. The pair is unique.
type CollegeInterest struct {
	CollegeID  uint      `gorm:"primaryKey;uniqueIndex:idx_college_interest" json:"college_id"`
	InterestID uint      `gorm:"primaryKey;uniqueIndex:idx_college_interest" json:"interest_id"`
	CreatedAt  time.Time `json:"created_at"`
}
