package venue

type GetVenueInput struct {
	VenueID string
}

type ListVenuesInput struct {
	SessionID string
}
