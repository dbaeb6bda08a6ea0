// Package projecterr holds the project not-found sentinel shared by the
// projects package and the subroute packages mounted under it, which cannot
// import projects directly without an import cycle.
package projecterr

import "errors"

var ErrNotFound = errors.New("project not found")
