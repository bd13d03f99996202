package domain

// Participant is a ticket buyer admitted to an event while it was open
// for public sale and under capacity.
type Participant struct {
	ID      string
	Name    string
	Email   string
	EventID string
}
