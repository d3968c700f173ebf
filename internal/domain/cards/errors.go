package cards

import "errors"

var (
	ErrCardNotFound       = errors.New("card not found")
	ErrInvalidCardName    = errors.New("card name is required")
	ErrInvalidPurchaseDay = errors.New("best purchase day must be between 1 and 31")
)
