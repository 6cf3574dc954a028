package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyURL       = errors.New("url is required")
	ErrUnsupportedURL = errors.New("url does not belong to a supported platform")
)
