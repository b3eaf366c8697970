package models

import "errors"

var (
	ErrNoActiveVote     = errors.New("no active vote")
	ErrDuplicateBallot  = errors.New("already voted")
	ErrUnknownOption    = errors.New("choice is not one of the vote options")
	ErrDelegateNotFound = errors.New("delegate not found")
)
