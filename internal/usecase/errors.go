package usecase

import "errors"

var (
	ErrInternal            = errors.New("internal error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	ErrUserNotFound        = errors.New("user not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUnreadableDocument  = errors.New("document could not be read")
	ErrPageFetchFailed     = errors.New("job posting could not be fetched")
	ErrMalformedCatalog    = errors.New("malformed catalog document")
	ErrNoGapSnapshot       = errors.New("no gap analysis found")
)
