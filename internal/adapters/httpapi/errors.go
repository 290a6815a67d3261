package httpapi

import (
	"fmt"
	"strings"

	"auction-storefront/internal/domain/shared"

	"github.com/tidwall/gjson"
)

// Category classifies a backend failure from its message text
type Category string

const (
	CategoryDatabase     Category = "database_connection"
	CategoryInternal     Category = "internal_server"
	CategoryNotFound     Category = "not_found"
	CategoryUnauthorized Category = "unauthorized"
	CategoryGeneric      Category = "generic"
)

// Messages shown for categorized failures. Generic failures keep the
// backend's own message.
const (
	MessageDatabase     = "Database connection error: the server could not reach its database. Please try again later."
	MessageInternal     = "Internal server error: something went wrong on the server. Please try again later."
	MessageNotFound     = "Not found: the requested resource does not exist."
	MessageUnauthorized = "Unauthorized: please log in again to continue."
)

// categoryPatterns is checked in order, first match wins
var categoryPatterns = []struct {
	category Category
	patterns []string
}{
	{CategoryDatabase, []string{"sql server", "database", "network-related", "connection string", "instance-specific error"}},
	{CategoryInternal, []string{"internal server error"}},
	{CategoryNotFound, []string{"not found"}},
	{CategoryUnauthorized, []string{"unauthorized", "unauthorised"}},
}

// APIError is a non-2xx backend response
type APIError struct {
	Status   int
	Category Category
	// Message is the categorized message shown to users
	Message string
	// Raw is the backend's message before categorization
	Raw string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the category so callers can use errors.Is
func (e *APIError) Unwrap() error {
	switch e.Category {
	case CategoryDatabase:
		return shared.ErrDatabaseConnection
	case CategoryInternal:
		return shared.ErrInternalServer
	case CategoryNotFound:
		return shared.ErrNotFound
	case CategoryUnauthorized:
		return shared.ErrUnauthorized
	default:
		return shared.ErrRequestFailed
	}
}

// NewAPIError builds the categorized error for a failed response
func NewAPIError(p *Payload) *APIError {
	raw := ExtractMessage(p)

	category := Categorize(raw)
	if category == CategoryGeneric {
		category = Categorize(p.Text())
	}

	return &APIError{
		Status:   p.Status,
		Category: category,
		Message:  categorizedMessage(category, raw),
		Raw:      raw,
	}
}

// ExtractMessage picks the failure message by precedence: an explicit message
// field, then the joined validation errors, then "Server error: <status>".
// A plain text body counts as an explicit message.
func ExtractMessage(p *Payload) string {
	if !p.IsJSON() {
		if text := strings.TrimSpace(p.Text()); text != "" {
			return text
		}
		return fallbackMessage(p.Status)
	}

	body := p.JSON()
	for _, key := range []string{"message", "Message", "error", "Error"} {
		if msg := body.Get(key); msg.Type == gjson.String && strings.TrimSpace(msg.Str) != "" {
			return msg.Str
		}
	}

	for _, key := range []string{"errors", "Errors"} {
		if joined := joinErrors(body.Get(key)); joined != "" {
			return joined
		}
	}

	return fallbackMessage(p.Status)
}

// joinErrors flattens a list of messages or a field -> messages map
func joinErrors(errs gjson.Result) string {
	var messages []string
	collect := func(r gjson.Result) {
		if r.IsArray() {
			for _, item := range r.Array() {
				if s := strings.TrimSpace(item.String()); s != "" {
					messages = append(messages, s)
				}
			}
			return
		}
		if s := strings.TrimSpace(r.String()); s != "" {
			messages = append(messages, s)
		}
	}

	switch {
	case errs.IsArray():
		collect(errs)
	case errs.IsObject():
		errs.ForEach(func(_, value gjson.Result) bool {
			collect(value)
			return true
		})
	case errs.Type == gjson.String:
		collect(errs)
	}

	return strings.Join(messages, ", ")
}

// Categorize matches message text against the known failure patterns
func Categorize(message string) Category {
	lower := strings.ToLower(message)
	for _, group := range categoryPatterns {
		for _, pattern := range group.patterns {
			if strings.Contains(lower, pattern) {
				return group.category
			}
		}
	}
	return CategoryGeneric
}

func categorizedMessage(category Category, raw string) string {
	switch category {
	case CategoryDatabase:
		return MessageDatabase
	case CategoryInternal:
		return MessageInternal
	case CategoryNotFound:
		return MessageNotFound
	case CategoryUnauthorized:
		return MessageUnauthorized
	default:
		return raw
	}
}

func fallbackMessage(status int) string {
	return fmt.Sprintf("Server error: %d", status)
}
