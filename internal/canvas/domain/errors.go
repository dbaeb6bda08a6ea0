package domain

import "errors"

var (
	ErrStateNotFound   = errors.New("canvas state not found")
	ErrHistoryNotFound = errors.New("canvas history not found")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
)
