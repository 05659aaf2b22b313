package service

import "errors"

// Sentinel errors shared by the services; handlers translate these into
// status-coded responses with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrNotPaid          = errors.New("order is not paid")
	ErrAlreadyActivated = errors.New("order already activated")
	ErrNotActivated     = errors.New("order not activated")
	ErrDeviceMismatch   = errors.New("device mismatch")
	ErrBadRequest       = errors.New("missing required field")
	ErrUpstream         = errors.New("payment provider error")
)
