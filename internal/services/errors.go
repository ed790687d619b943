package services

import "errors"

// ErrNotFound marks a lookup that failed because the target does not exist,
// as opposed to a persistence failure. Handlers map it to 404.
var ErrNotFound = errors.New("not found")
