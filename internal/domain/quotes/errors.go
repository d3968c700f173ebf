package quotes

import "errors"

var ErrInvalidTicker = errors.New("ticker must have at most 12 letters, digits, dots or dashes")
