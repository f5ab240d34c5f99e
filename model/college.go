package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CollegeType is the ownership/funding category of an institution
type CollegeType string

const (
	CollegeTypeGovernment CollegeType = "Government"
	CollegeTypePrivate    CollegeType = "Private"
	CollegeTypeAided      CollegeType = "Aided"
	CollegeTypeAutonomous CollegeType = "Autonomous"
)

// EstablishedYearMin bounds the founding year to a sane calendar range.
// Anything older than this is a data-entry error, not a real college.
const EstablishedYearMin = 1800

// College represents an educational institution in the catalog
type College struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Code            string         `gorm:"uniqueIndex;not null" json:"code"` // e.g., "IITD", "SRCC"
	Name            string         `gorm:"not null" json:"name"`
	Address         string         `gorm:"type:varchar(500)" json:"address"`
	City            string         `gorm:"type:varchar(100);index" json:"city"`
	State           string         `gorm:"type:varchar(100);index" json:"state"`
	Pincode         string         `gorm:"type:varchar(10)" json:"pincode"`
	Phone           string         `gorm:"type:varchar(20)" json:"phone"`
	Email           string         `gorm:"type:varchar(255)" json:"email"`
	Website         string         `gorm:"type:varchar(255)" json:"website"`
	Type            CollegeType    `gorm:"type:varchar(20);index" json:"type"`
	Affiliation     string         `gorm:"type:varchar(255)" json:"affiliation"`
	EstablishedYear int            `json:"established_year"`
	Description     string         `gorm:"type:text" json:"description"`
	AverageRating   float64        `gorm:"default:0" json:"average_rating"` // 0.0 - 5.0
	CoverImage      string         `gorm:"type:varchar(500)" json:"cover_image,omitempty"`
	Facilities      datatypes.JSON `json:"facilities,omitempty"` // e.g., ["Hostel","Library","Labs"]

	// Relationships
	Streams   []Stream    `gorm:"many2many:college_streams;" json:"streams,omitempty"`
	Interests []Interest  `gorm:"many2many:college_interests;" json:"interests,omitempty"`
	Fees      []AnnualFee `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"fees,omitempty"`
}

// AnnualFee is a yearly fee record for a college. StreamID is nil for a
// college-wide fee; otherwise the fee applies to that stream only.
type AnnualFee struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CollegeID uint           `gorm:"not null;index" json:"college_id"`
	StreamID  *uint          `gorm:"index" json:"stream_id,omitempty"`
	Amount    float64        `gorm:"not null;check:amount >= 0" json:"amount"`

	College College `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	Stream  *Stream `gorm:"foreignKey:StreamID" json:"stream,omitempty"`
}
