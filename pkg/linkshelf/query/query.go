package query

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/mikepea/linkshelf/pkg/linkshelf/models"
)

// Control parameter defaults
const (
	DefaultLimit   = 50
	DefaultOffset  = 0
	DefaultSortBy  = "createdAt"
	DefaultSortDir = "asc"
)

// ErrBadOrder is returned when the requested ordering cannot be applied
var ErrBadOrder = errors.New("bad order request")

// Control holds the pagination and sort parameters of a list request
type Control struct {
	Limit   int
	Offset  int
	SortBy  string
	SortDir string
}

// Filters maps column names to the value they must equal
type Filters map[string]string

// DefaultControl returns the control parameters used when none are supplied
func DefaultControl() Control {
	return Control{
		Limit:   DefaultLimit,
		Offset:  DefaultOffset,
		SortBy:  DefaultSortBy,
		SortDir: DefaultSortDir,
	}
}

// SplitQuery partitions query-string values into control parameters and
// equality filters. Only the first value of each key is used. Control keys
// that are missing or unparseable keep their defaults.
func SplitQuery(values url.Values) (Control, Filters) {
	control := DefaultControl()
	filters := Filters{}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		value := vals[0]

		switch key {
		case "limit":
			if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
				control.Limit = parsed
			}
		case "offset":
			if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
				control.Offset = parsed
			}
		case "sort_by":
			if value != "" {
				control.SortBy = value
			}
		case "sort_dir":
			if value != "" {
				control.SortDir = strings.ToLower(value)
			}
		default:
			filters[key] = value
		}
	}

	return control, filters
}

// Capped returns a copy of c with Limit no larger than max.
// A max of zero or less disables the cap.
func (c Control) Capped(max int) Control {
	if max > 0 && c.Limit > max {
		c.Limit = max
	}
	return c
}

// Validate checks that the sort column exists and the direction is known
func (c Control) Validate() error {
	if !models.IsColumn(c.SortBy) {
		return ErrBadOrder
	}
	if c.SortDir != "asc" && c.SortDir != "desc" {
		return ErrBadOrder
	}
	return nil
}

// Desc reports whether results are sorted in descending order
func (c Control) Desc() bool {
	return c.SortDir == "desc"
}
