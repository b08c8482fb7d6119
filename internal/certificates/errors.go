package certificates

import "errors"

var ErrNotFound = errors.New("certificate not found")
