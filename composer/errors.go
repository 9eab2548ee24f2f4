package composer

import (
	"errors"
	"fmt"
)

// ErrEmptyPhotoRef is returned when a request carries no candidate photo reference
var ErrEmptyPhotoRef = errors.New("photo reference is empty")

// ImageLoadError reports that the candidate photo could not be fetched or decoded.
// No partial card is produced when it is returned.
type ImageLoadError struct {
	Ref string
	Err error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("failed to load image %q: %v", e.Ref, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}

// RenderContextError reports that a drawing surface could not be set up
type RenderContextError struct {
	Reason string
}

func (e *RenderContextError) Error() string {
	return "failed to acquire render context: " + e.Reason
}
