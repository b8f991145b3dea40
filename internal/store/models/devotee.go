// Package models contains the record definitions persisted by the store.
package models

import (
	"strings"
	"time"
)

// InitiationStatus is the spiritual standing of a devotee.
type InitiationStatus string

// All recognised initiation statuses.
const (
	StatusShelter         InitiationStatus = "Shelter"
	StatusAspirant        InitiationStatus = "Aspirant"
	StatusFirstInitiated  InitiationStatus = "First Initiated"
	StatusSecondInitiated InitiationStatus = "Second Initiated"
	StatusUninitiated     InitiationStatus = "Uninitiated"
)

// InitiationStatuses lists every valid status, in form display order.
func InitiationStatuses() []InitiationStatus {
	return []InitiationStatus{
		StatusShelter,
		StatusAspirant,
		StatusFirstInitiated,
		StatusSecondInitiated,
		StatusUninitiated,
	}
}

// Valid reports whether s is one of the recognised statuses.
func (s InitiationStatus) Valid() bool {
	switch s {
	case StatusShelter, StatusAspirant, StatusFirstInitiated, StatusSecondInitiated, StatusUninitiated:
		return true
	}

	return false
}

// Devotee represents a registered member of the temple community.
type Devotee struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	SpiritualName string           `json:"spiritualName,omitempty"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	DOB           string           `json:"dob,omitempty"`
	Photo         string           `json:"photo,omitempty"` // inline image data
	Status        InitiationStatus `json:"status"`
	JoinedAt      time.Time        `json:"joinedAt"`
	Hobbies       string           `json:"hobbies,omitempty"`
	DailyMalas    int              `json:"dailyMalas"`
}

// Initials returns up to two upper-cased initials for avatar rendering.
func (d Devotee) Initials() string {
	var initials []rune

	for _, part := range strings.Fields(d.Name) {
		initials = append(initials, []rune(part)[0])
		if len(initials) == 2 {
			break
		}
	}

	return strings.ToUpper(string(initials))
}
