package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by repositories when a requested entity does not
// exist. Backends wrap it so callers can distinguish absence from failure.
var ErrNotFound = goerr.New("not found")
