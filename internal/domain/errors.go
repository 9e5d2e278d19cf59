package domain

import "errors"

var (
	ErrTransport = errors.New("transport error")
	ErrNotFound  = errors.New("movie not found")
	ErrAborted   = errors.New("request aborted")
	ErrParse     = errors.New("malformed response")
)

const (
	transportMessage = "Something went wrong with fetching movies"
	notFoundMessage  = "Movie not found!"
)

// UserMessage maps a lookup error to the text shown in the UI. Aborted
// requests have no message.
func UserMessage(err error) string {
	switch {
	case err == nil, errors.Is(err, ErrAborted):
		return ""
	case errors.Is(err, ErrNotFound):
		return notFoundMessage
	default:
		return transportMessage
	}
}
