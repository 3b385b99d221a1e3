package attendees

import "stampcard/internal/booths"

type CardResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Team          string  `json:"team"`
	StampedBooths []int   `json:"stamped_booths"`
	Stamps        int     `json:"stamps"`
	TotalBooths   int     `json:"total_booths"`
	Progress      float64 `json:"progress"` // percent, one decimal
	MinStamps     int     `json:"min_stamps"`
	StampsNeeded  int     `json:"stamps_needed"`
	Eligible      bool    `json:"eligible"`
}

type StampResponse struct {
	Status string               `json:"status"` // stamped or already_stamped
	Booth  booths.BoothResponse `json:"booth"`
	Card   CardResponse         `json:"card"`
}

// submission token plus the same text as a PNG data URL
type SubmissionResponse struct {
	Token  string `json:"token"`
	QRCode string `json:"qr_code"`
}
