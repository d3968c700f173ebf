package reports

import "errors"

var (
	ErrInvalidPeriod = errors.New("month must be between 1 and 12 and year must have four digits")
	ErrInvalidKind   = errors.New("kind must be expense or income")
	ErrInvalidStatus = errors.New("invalid status for kind")
)
