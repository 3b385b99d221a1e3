package draws

import (
	"time"

	"github.com/google/uuid"
)

// DrawResult is the durable record of one lucky draw
type DrawResult struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SessionID      string    `json:"session_id" gorm:"not null;size:64;index"`
	Winners        []string  `json:"winners" gorm:"type:jsonb;serializer:json;not null"`
	Announcement   string    `json:"announcement" gorm:"type:text"`
	Generated      bool      `json:"generated" gorm:"not null;default:false"`
	PoolSize       int       `json:"pool_size" gorm:"not null"`
	RequestedCount int       `json:"requested_count" gorm:"not null"`
	DrawnAt        time.Time `json:"drawn_at" gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (DrawResult) TableName() string {
	return "draw_results"
}
