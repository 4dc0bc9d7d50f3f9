package domain

// TeamMember is reference data describing a person that can be
// assigned to RFPs. Members are seeded, not created through the API.
type TeamMember struct {
	ID    int
	Name  string
	Role  string
	Email string
}
