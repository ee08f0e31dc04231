package game

import "errors"

// Colony errors. Error strings are what front ends show the player.
var (
	ErrUnknownType           = errors.New("unknown type")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrOccupied              = errors.New("occupied")
	ErrInvalidLocation       = errors.New("invalid location")
	ErrNoSuchBoost           = errors.New("no such boost")
	ErrNoDefender            = errors.New("no defender at location")
)
