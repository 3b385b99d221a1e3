package teams

import (
	"time"

	"github.com/google/uuid"
)

// Team is one entry of the registration team list. Position keeps the order
// the admin typed the list in.
type Team struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Position  int       `json:"position" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Team) TableName() string {
	return "teams"
}
