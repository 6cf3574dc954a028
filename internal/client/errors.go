package client

import "errors"

var (
	ErrNoURL      = errors.New("no URL given and the clipboard is empty")
	ErrTaskFailed = errors.New("download failed")
)
