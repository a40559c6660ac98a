package organizer

import "errors"

var (
	// ErrDestinationExists indicates the destination file already exists.
	ErrDestinationExists = errors.New("destination file already exists")

	// ErrDestinationConflict indicates two scanned files are planned
	// for the same destination path.
	ErrDestinationConflict = errors.New("another file is planned for the same destination")

	// ErrMoveFailed indicates the file move operation failed.
	ErrMoveFailed = errors.New("failed to move file")

	// ErrTooManySequences indicates the contiguous renumbering would
	// exceed three digits.
	ErrTooManySequences = errors.New("too many sequences for contiguous renumbering")

	// ErrNotDirectory indicates the destination root exists but is not
	// a directory.
	ErrNotDirectory = errors.New("destination root is not a directory")
)
