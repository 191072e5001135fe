package document

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Filter restricts the administrative listing. Only the fields below can be
// filtered on; ParseFilter rejects anything else.
type Filter struct {
	Title      *string
	Author     *string
	Subject    *string
	IsApproved *bool
}

// Query keys that are not filter fields.
var reservedKeys = map[string]bool{"pageSize": true, "currentPage": true}

// ParseFilter builds a Filter from query parameters.
func ParseFilter(params map[string]string) (Filter, error) {
	var f Filter
	var unknown []string
	for k, v := range params {
		v := v
		switch k {
		case "title":
			f.Title = &v
		case "author":
			f.Author = &v
		case "subject":
			f.Subject = &v
		case "is_approved":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Filter{}, fmt.Errorf("%w: is_approved must be a boolean", ErrValidation)
			}
			f.IsApproved = &b
		default:
			if !reservedKeys[k] {
				unknown = append(unknown, k)
			}
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Filter{}, fmt.Errorf("%w: unsupported filter field(s): %s", ErrValidation, strings.Join(unknown, ", "))
	}
	return f, nil
}

// Match reports whether d satisfies every set field of f.
func (f Filter) Match(d *Document) bool {
	if f.Title != nil && d.Title != *f.Title {
		return false
	}
	if f.Author != nil && d.Author != *f.Author {
		return false
	}
	if f.Subject != nil && d.Subject != *f.Subject {
		return false
	}
	if f.IsApproved != nil && d.IsApproved != *f.IsApproved {
		return false
	}
	return true
}

// Approved selects approved documents, optionally for one subject.
func Approved(subject string) Filter {
	t := true
	f := Filter{IsApproved: &t}
	if subject != "" {
		f.Subject = &subject
	}
	return f
}
