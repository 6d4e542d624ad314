package catalog

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collatorHolder wraps a collator for locale-aware tag ordering. Collators
// are not safe for concurrent use, so access stays confined to AllTags.
type collatorHolder struct {
	collator *collate.Collator
}

func newCollatorHolder(lang string) (*collatorHolder, error) {
	tag := language.Und
	if lang != "" {
		parsed, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("tags.language %q: %w", lang, err)
		}
		tag = parsed
	}
	return &collatorHolder{collator: collate.New(tag)}, nil
}

// AllTags returns every distinct tag with its usage count, ordered by the
// configured collation locale.
func (s *Store) AllTags(ctx context.Context) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag, COUNT(*) FROM record_tags GROUP BY tag`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		tags = append(tags, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	collator := s.collator.collator
	sort.SliceStable(tags, func(i, j int) bool {
		return collator.CompareString(tags[i].Tag, tags[j].Tag) < 0
	})
	return tags, nil
}
