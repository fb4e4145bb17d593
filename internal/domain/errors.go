package domain

import "errors"

// Domain errors represent error conditions in the runeguard application.
// These errors can be checked with errors.Is.
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("runeguard: invalid configuration")

	// ErrNoSources is returned when a command is given nothing to read.
	ErrNoSources = errors.New("runeguard: no sources given")

	// ErrUnknownFormat is returned for an unsupported report format.
	ErrUnknownFormat = errors.New("runeguard: unknown report format")

	// ErrSourceTooLarge is returned when a source exceeds the byte limit.
	ErrSourceTooLarge = errors.New("runeguard: source exceeds size limit")

	// ErrPermanent marks a load failure that retrying cannot fix, such as a
	// 4xx response or a stream that was already partly consumed.
	ErrPermanent = errors.New("runeguard: permanent load failure")

	// ErrInvalidInput is returned when at least one scanned source is not valid UTF-8.
	ErrInvalidInput = errors.New("runeguard: invalid UTF-8 input")
)
