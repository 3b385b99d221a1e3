package attendees

// card registration payload
type RegisterCardRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Team string `json:"team" validate:"required,max=100"`
}

// scanned booth code
type CollectStampRequest struct {
	BoothID int    `json:"booth_id" validate:"required,min=1"`
	Code    string `json:"code" validate:"required"`
}
