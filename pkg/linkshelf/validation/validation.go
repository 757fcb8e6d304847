package validation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Stable error codes returned to clients
const (
	CodeInvalidLink        = "BOOKMARKS_INVALID_LINK"
	CodeBlockedDomain      = "BOOKMARKS_BLOCKED_DOMAIN"
	CodeInvalidDescription = "BOOKMARKS_INVALID_DESCRIPTION"
	CodeInvalidFavorites   = "BOOKMARKS_INVALID_FAVORITES"
	CodeReadOnlyField      = "BOOKMARKS_READONLY_FIELD"
	CodeUnknownField       = "BOOKMARKS_UNKNOWN_FIELD"
	CodeInvalidBody        = "BOOKMARKS_INVALID_BODY"
)

// linkRules is checked in order; the first failing tag wins.
const linkRules = "required,url,notblocked"

var blockedLinks = map[string]struct{}{
	"http://yahoo.com":  {},
	"https://yahoo.com": {},
	"http://socket.io":  {},
	"https://socket.io": {},
}

var readOnlyFields = map[string]struct{}{
	"guid":      {},
	"createdAt": {},
	"updatedAt": {},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblocked", notBlocked); err != nil {
		panic(err)
	}
	return v
}

func notBlocked(fl validator.FieldLevel) bool {
	return !IsBlocked(fl.Field().String())
}

// Error is a validation failure with a stable code
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}

// IsBlocked reports whether link is on the block-list
func IsBlocked(link string) bool {
	_, blocked := blockedLinks[link]
	return blocked
}

// ValidateLink checks a submitted link against the presence, URL shape and
// block-list rules. It returns nil when the link is acceptable.
func ValidateLink(link string) *Error {
	err := validate.Var(link, linkRules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &Error{Code: CodeInvalidLink, Description: "Link is invalid"}
	}

	switch fieldErrs[0].Tag() {
	case "required":
		return &Error{Code: CodeInvalidLink, Description: "Link is required"}
	case "notblocked":
		return &Error{Code: CodeBlockedDomain, Description: fmt.Sprintf("Links to %s are not allowed", link)}
	default:
		return &Error{Code: CodeInvalidLink, Description: "Link must be a valid URL"}
	}
}

// ValidateFields checks the type and content of every field in a submitted
// bookmark body. Fields are checked in sorted order so the reported error is
// deterministic.
func ValidateFields(body map[string]any) *Error {
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := body[key]
		if _, ok := readOnlyFields[key]; ok {
			return &Error{Code: CodeReadOnlyField, Description: fmt.Sprintf("Field %s cannot be changed", key)}
		}

		switch key {
		case "link":
			link, ok := value.(string)
			if !ok {
				return &Error{Code: CodeInvalidLink, Description: "Link must be a string"}
			}
			if verr := ValidateLink(link); verr != nil {
				return verr
			}
		case "description":
			if _, ok := value.(string); !ok {
				return &Error{Code: CodeInvalidDescription, Description: "Description must be a string"}
			}
		case "favorites":
			if _, ok := value.(bool); !ok {
				return &Error{Code: CodeInvalidFavorites, Description: "Favorites must be a boolean"}
			}
		default:
			return &Error{Code: CodeUnknownField, Description: fmt.Sprintf("Unknown field %s", key)}
		}
	}

	return nil
}
