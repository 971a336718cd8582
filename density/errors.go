package density

import (
	"errors"
	"fmt"
)

// ErrInvalidImage is matched by every *InvalidImageError.
var ErrInvalidImage = errors.New("invalid image")

// InvalidImageError reports an image that cannot be turned into a density grid.
type InvalidImageError struct {
	Width, Height int
	Reason        string
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image (%dx%d): %s", e.Width, e.Height, e.Reason)
}

// Is reports ErrInvalidImage as a match so callers can use errors.Is.
func (e *InvalidImageError) Is(target error) bool {
	return target == ErrInvalidImage
}
