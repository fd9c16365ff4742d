package domain

import "errors"

// Availability errors
var (
	ErrInvalidSlotTime = errors.New("slot times must be HH:mm on a 10-minute boundary")
	ErrSlotTooShort    = errors.New("slot must be at least 30 minutes long")
	ErrSlotBooked      = errors.New("slot is already booked")
	ErrNotSlotOwner    = errors.New("slot does not belong to this mentor")
)

// Session / booking errors
var (
	ErrInvalidDuration   = errors.New("duration must be at least 30 minutes and a multiple of 10")
	ErrOutsideSlot       = errors.New("session does not fit inside the slot")
	ErrNotSessionParty   = errors.New("user is not part of this session")
	ErrNotSessionHost    = errors.New("only the session host can perform this action")
	ErrInvalidTransition = errors.New("invalid session status transition")
)

// Match errors
var (
	ErrMatchExists      = errors.New("match request already exists")
	ErrNotMatchReceiver = errors.New("only the request receiver can respond")
	ErrMatchNotPending  = errors.New("match request is not pending")
)

// Review errors
var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed = errors.New("user has already reviewed this target")
)

// Messaging errors
var (
	ErrNotParticipant = errors.New("user is not a participant of this conversation")
)

// Ownership errors
var (
	ErrNotOwner = errors.New("resource does not belong to this user")
)
