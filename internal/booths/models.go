package booths

// Booth is a physical stop on the stamp trail. SecretCode is the text
// encoded in the booth's printed QR code.
type Booth struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	SecretCode  string `json:"secret_code"`
	Description string `json:"description"`
}

// ToResponse hides the secret code
func (b Booth) ToResponse() BoothResponse {
	return BoothResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
	}
}

// DefaultBooths is the built-in trail used when no BOOTHS_FILE is configured
var DefaultBooths = []Booth{
	{ID: 1, Name: "Booth Alpha", SecretCode: "ALPHA24", Description: "Play our latest interactive game and see how we're changing the training landscape."},
	{ID: 2, Name: "Booth Bravo", SecretCode: "BRAVO24", Description: "Discover the bright ideas powering our next-gen products. It's illuminating!"},
	{ID: 3, Name: "Booth Charlie", SecretCode: "CHARLIE24", Description: "See our secret formula for success and experiment with our latest internal tools."},
	{ID: 4, Name: "Booth Delta", SecretCode: "DELTA24", Description: "Hear from our team about the future of communication and our new podcast series."},
	{ID: 5, Name: "Booth Echo", SecretCode: "ECHO24", Description: "Get a sneak peek at the code behind our curtain. It's more than just magic!"},
	{ID: 6, Name: "Booth Foxtrot", SecretCode: "FOXTROT24", Description: "We're launching new initiatives! See our trajectory for the upcoming year."},
	{ID: 7, Name: "Booth Golf", SecretCode: "GOLF24", Description: "Watch our latest project highlight reel and see the cinematic stories we're telling."},
	{ID: 8, Name: "Booth Hotel", SecretCode: "HOTEL24", Description: "Learn how we're fostering collaboration and building stronger teams across the division."},
	{ID: 9, Name: "Booth India", SecretCode: "INDIA24", Description: "Celebrate our recent wins and see the award-winning work our team is delivering."},
}
