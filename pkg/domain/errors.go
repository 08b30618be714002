package domain

import "errors"

// ErrSlotNotFound is returned when a save slot does not exist in the store.
// Callers treat it as "new game", not as a failure.
var ErrSlotNotFound = errors.New("save slot not found")

// ErrInvalidSave is returned when stored data fails structural validation.
// The live state is left untouched.
var ErrInvalidSave = errors.New("invalid save data")

// ErrDeckExhausted is returned when every question pool is empty. It is a
// normal terminal condition the caller must branch on.
var ErrDeckExhausted = errors.New("question deck exhausted")

// ErrFatePending is returned when drawing a fate card while another draw is
// still awaiting activation.
var ErrFatePending = errors.New("a fate card is already pending")

// ErrFateDeckEmpty is returned when the fate deck has no cards to draw.
var ErrFateDeckEmpty = errors.New("fate deck is empty")

// ErrNoQuestion is returned when an answer arrives with no question in play.
var ErrNoQuestion = errors.New("no question in play")

// ErrNoFateCard is returned when choosing an option with no card in play.
var ErrNoFateCard = errors.New("no fate card in play")
