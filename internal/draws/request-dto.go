package draws

type ReplaceRosterRequest struct {
	Roster string `json:"roster"`
}

type ScanRequest struct {
	Token string `json:"token" validate:"required"`
}

// DrawRequest carries the number of winners. Omitted means the configured
// default.
type DrawRequest struct {
	Winners *int `json:"winners"`
}
