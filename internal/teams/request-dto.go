package teams

// newline-separated team names, as typed in the admin text area
type ReplaceTeamsRequest struct {
	Teams string `json:"teams" validate:"required"`
}
