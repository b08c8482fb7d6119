package maps

import "errors"

var ErrNotFound = errors.New("map not found")
