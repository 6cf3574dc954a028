package server

import "errors"

// errNoServersAreCreated is returned by NewServer when handlers carry no
// HTTP router to serve.
var errNoServersAreCreated = errors.New("no http server to run: handlers are empty")
