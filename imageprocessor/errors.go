package imageprocessor

import "fmt"

// InvalidImageError reports a path with a disallowed extension or one
// that does not exist
type InvalidImageError struct {
	Path string
}

func (e *InvalidImageError) Error() string {
	return "Invalid image " + e.Path
}

// DecodeError reports an image that could not be loaded or decoded
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(path string, err error) *DecodeError {
	return &DecodeError{Path: path, Err: err}
}
