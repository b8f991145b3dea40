package models

// Session represents a scheduled congregation program.
type Session struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Facilitator string   `json:"facilitator"`
	AttendeeIDs []string `json:"attendeeIds"`
}
