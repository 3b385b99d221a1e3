package attendees

import (
	"time"

	"github.com/google/uuid"
)

// Card is an attendee's stamp card
type Card struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Team      string    `json:"team" gorm:"not null;size:100;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Stamps []Stamp `json:"stamps,omitempty" gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE;"`
}

// Stamp records one booth visit. A card holds at most one stamp per booth.
type Stamp struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CardID      uuid.UUID `json:"card_id" gorm:"type:uuid;not null;uniqueIndex:idx_stamp_card_booth"`
	BoothID     int       `json:"booth_id" gorm:"not null;uniqueIndex:idx_stamp_card_booth"`
	CollectedAt time.Time `json:"collected_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Card) TableName() string {
	return "cards"
}

func (Stamp) TableName() string {
	return "stamps"
}

// BoothIDs lists stamped booths in collection order
func (c *Card) BoothIDs() []int {
	ids := make([]int, 0, len(c.Stamps))
	for _, s := range c.Stamps {
		ids = append(ids, s.BoothID)
	}
	return ids
}
