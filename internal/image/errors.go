package imagepkg

import "fmt"

// ArtworkFetchError reports an artwork reference that could not be resolved.
type ArtworkFetchError struct {
	Ref string
	Err error
}

func (e *ArtworkFetchError) Error() string {
	return fmt.Sprintf("fetch artwork %q: %v", e.Ref, e.Err)
}

func (e *ArtworkFetchError) Unwrap() error { return e.Err }

// DecodeError reports bytes that are not a decodable raster image.
type DecodeError struct {
	Ref string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Ref, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidColorError reports a theme color that is not of the form #RRGGBB.
type InvalidColorError struct {
	Value string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid theme color %q: want #RRGGBB", e.Value)
}

// WriteError reports a failure to persist the final canvas.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write wallpaper %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
