package booths

// public booth view, never carries the secret code
type BoothResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type BoothListResponse struct {
	Booths []BoothResponse `json:"booths"`
	Total  int             `json:"total"`
}
