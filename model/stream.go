package model

import (
	"time"

	"gorm.io/gorm"
)

// Stream represents an academic discipline offered by colleges
// (e.g., Engineering, Commerce, Arts)
type Stream struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Code        string         `gorm:"uniqueIndex;not null" json:"code"` // e.g., "ENG", "COM"
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
}

// CollegeStream links a college to a stream it offers. A college offers
// zero or more streams; the pair is unique.
type CollegeStream struct {
	CollegeID uint      `gorm:"primaryKey;uniqueIndex:idx_college_stream" json:"college_id"`
	StreamID  uint      `gorm:"primaryKey;uniqueIndex:idx_college_stream" json:"stream_id"`
	CreatedAt time.Time `json:"created_at"`
}
