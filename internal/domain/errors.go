package domain

import "errors"

// ErrDuplicateUser maps a uniqueness-constraint violation during
// registration (username or email already taken).
var ErrDuplicateUser = errors.New("user already exists")
