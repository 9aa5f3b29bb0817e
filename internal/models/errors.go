package models

import "errors"

var (
	// ErrInterrupted reports that the user cancelled a running operation.
	ErrInterrupted = errors.New("cancelled by user")
	// ErrInvalidValue reports a CLI argument that failed validation.
	ErrInvalidValue = errors.New("invalid value")
	// ErrHelpDisplayed reports that help text was printed instead of running a command.
	ErrHelpDisplayed = errors.New("help displayed")
	// ErrUsage reports arguments the parser rejected.
	ErrUsage = errors.New("invalid usage")
	// ErrInvalidTopDir reports analytics input outside the scrapes directory.
	ErrInvalidTopDir = errors.New("scrape data is not located within the scrapes directory")
	// ErrInvalidFormat reports analytics input that is not a JSON scrape export.
	ErrInvalidFormat = errors.New("invalid file format")
)

// ErrRateLimited reports that the API request budget is exhausted.
var ErrRateLimited = errors.New("rate limit reached")
