package subscribers

import "errors"

var (
	ErrNotFound  = errors.New("subscriber not found")
	ErrDuplicate = errors.New("email already subscribed")
)
