package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-video-fetcher/models"
)

// FieldURL targets the url field of a download request.
const FieldURL = "url"

// supportedURLPatterns are matched against the start of a normalized URL.
var supportedURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(https?://)?(www\.|vm\.|vt\.)?tiktok\.com/`),
	regexp.MustCompile(`^(https?://)?(www\.)?instagram\.com/`),
	regexp.MustCompile(`^(https?://)?ddinstagram\.com/`),
}

// NormalizeURL trims surrounding whitespace and prepends "https://" when the
// value does not already start with "http".
func NormalizeURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", ErrEmptyURL
	}

	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}

	return url, nil
}

// IsSupportedURL reports whether url points at TikTok or Instagram.
func IsSupportedURL(url string) bool {
	for _, pattern := range supportedURLPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}

	return false
}

// DetectPlatform guesses the platform from the host part of url.
// "ddinstagram" links count as Instagram.
func DetectPlatform(url string) models.Platform {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "tiktok"):
		return models.PlatformTikTok
	case strings.Contains(lower, "instagram"):
		return models.PlatformInstagram
	default:
		return models.PlatformUnknown
	}
}

// Validate normalizes raw and checks it against the supported platforms.
func Validate(raw string) (string, models.Platform, error) {
	url, err := NormalizeURL(raw)
	if err != nil {
		return "", models.PlatformUnknown, err
	}

	if !IsSupportedURL(url) {
		return "", models.PlatformUnknown, ErrUnsupportedURL
	}

	return url, DetectPlatform(url), nil
}

// URLValidator implements Validator for download requests.
//
// On success the URL of the validated *models.DownloadRequest is replaced
// with its normalized form.
type URLValidator struct{}

// NewURLValidator returns a Validator for *models.DownloadRequest values.
func NewURLValidator() *URLValidator {
	return &URLValidator{}
}

// Validate implements Validator. The only known field is FieldURL; passing
// no fields validates everything.
func (v *URLValidator) Validate(ctx context.Context, value any, fields ...string) error {
	for _, field := range fields {
		if field != FieldURL {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	switch req := value.(type) {
	case *models.DownloadRequest:
		if req == nil {
			return ErrEmptyURL
		}
		url, _, err := Validate(req.URL)
		if err != nil {
			return err
		}
		req.URL = url
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
}
