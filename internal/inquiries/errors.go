package inquiries

import "errors"

var ErrNotFound = errors.New("inquiry not found")
