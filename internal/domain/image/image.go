package image

import (
	"sort"
	"strings"

	"auction-storefront/internal/domain/shared"
)

// MaxFileSize is the largest image the backend accepts (5 MiB)
const MaxFileSize int64 = 5 * 1024 * 1024

// AllowedTypes lists the accepted MIME types
var AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Image is an image attached to an auction
type Image struct {
	ID           int64  `json:"id"`
	AuctionID    int64  `json:"auctionId"`
	URL          string `json:"url"`
	IsPrimary    bool   `json:"isPrimary"`
	DisplayOrder int    `json:"displayOrder"`
	AltText      string `json:"altText,omitempty"`
}

// Validation is the outcome of checking a file before upload
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Validate checks the MIME type and size of a file. It never fails with an
// error so callers can check a whole batch before uploading.
func Validate(file File) Validation {
	if !IsAllowedType(file.ContentType) {
		return Validation{Error: shared.ErrImageTypeNotAllowed.Error()}
	}
	if file.Size > MaxFileSize {
		return Validation{Error: shared.ErrImageTooLarge.Error()}
	}
	return Validation{Valid: true}
}

// IsAllowedType reports whether contentType is on the allow-list
func IsAllowedType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	for _, allowed := range AllowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

// SortByDisplayOrder orders images ascending by display order
func SortByDisplayOrder(images []Image) {
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].DisplayOrder < images[j].DisplayOrder
	})
}

// Gallery returns a copy ordered for display: the primary image first, the
// rest by display order
func Gallery(images []Image) []Image {
	ordered := make([]Image, len(images))
	copy(ordered, images)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].IsPrimary != ordered[j].IsPrimary {
			return ordered[i].IsPrimary
		}
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})
	return ordered
}

// ResolveURL turns a relative image path into an absolute URL on base
func ResolveURL(base, url string) string {
	if url == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(url, "/")
}
