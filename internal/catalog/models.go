package catalog

import "time"

// Record represents a cataloged video asset.
type Record struct {
	ID          int64     `json:"id"`
	Path        string    `json:"path"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
	Missing     bool      `json:"missing"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasTag reports whether the record carries the given tag.
func (r *Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Filter selects records for List. Zero value matches every record.
type Filter struct {
	// Tags requires records to carry all listed tags (intersection).
	Tags []string
	// MissingOnly restricts the result to records whose file is absent.
	MissingOnly bool
}

// TagCount pairs a tag with the number of records carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Summary aggregates catalog counts for status output.
type Summary struct {
	Records int `json:"records"`
	Tags    int `json:"tags"`
	Missing int `json:"missing"`
}
