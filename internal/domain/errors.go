package domain

import "errors"

var (
	// ErrUnauthorized is returned when the presented bearer token does not
	// match the configured secret
	ErrUnauthorized = errors.New("bearer token does not match configured secret")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUpstreamFailure is returned when the shopping search request fails
	ErrUpstreamFailure = errors.New("shopping search request failed")

	// ErrNoMatchingSource is returned when the upstream search succeeded but
	// no result survived the platform allow-list filter
	ErrNoMatchingSource = errors.New("no result from an allow-listed platform")
)
