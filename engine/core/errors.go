package core

import (
	"errors"
)

// ErrAssetNotFound is returned when a name does not resolve to a registered
// asset. Callers branch on it to tell missing files from read failures.
var ErrAssetNotFound = errors.New("asset not found")
