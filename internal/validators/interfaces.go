// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators decides which links the fetcher accepts.
//
// NormalizeURL, IsSupportedURL and DetectPlatform are the building blocks;
// Validate combines them. URLValidator wraps the same checks behind the
// Validator interface for code that validates request bodies.
package validators

import "context"

// Validator checks a request value, optionally only the named fields.
// Implementations may normalize the value in place.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
