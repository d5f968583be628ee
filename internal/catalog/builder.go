package catalog

import (
	"sort"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options tunes catalog construction.
type Options struct {
	// WordsPerMinute overrides the assumed reading speed (defaults to 200).
	WordsPerMinute int
	// IncludeDrafts keeps posts flagged draft in the catalog.
	IncludeDrafts bool
}

// Build aggregates loaded posts into an immutable, date-ordered catalog.
// Posts are sorted by publication date descending; ties keep the input
// order so repeated builds over the same sources stay deterministic.
func Build(rawPosts []*interfaces.RawPost, opts Options) (*Catalog, error) {
	posts := make([]*Post, 0, len(rawPosts))
	byPath := make(map[string]*Post, len(rawPosts))

	for _, raw := range rawPosts {
		if raw == nil {
			continue
		}
		if raw.FrontMatter.Draft && !opts.IncludeDrafts {
			continue
		}

		post := fromRaw(raw, opts)
		if existing, ok := byPath[post.Path]; ok {
			return nil, &DuplicatePathError{
				Path:      post.Path,
				File:      existing.SourceFile,
				OtherFile: post.SourceFile,
			}
		}

		byPath[post.Path] = post
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})

	byTag := make(map[string][]*Post)
	for _, post := range posts {
		seen := map[string]struct{}{}
		for _, tag := range post.Tags {
			key := tagKey(tag)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			byTag[key] = append(byTag[key], post)
		}
	}

	return &Catalog{
		posts:  posts,
		byPath: byPath,
		byTag:  byTag,
	}, nil
}

func fromRaw(raw *interfaces.RawPost, opts Options) *Post {
	path := normalizePath(raw.FrontMatter.Path)

	return &Post{
		ID:           identity.PostUUID(path),
		Title:        raw.FrontMatter.Title,
		Author:       raw.FrontMatter.Author,
		Summary:      raw.FrontMatter.Summary,
		Date:         raw.FrontMatter.Date,
		Path:         path,
		Tags:         append([]string(nil), raw.FrontMatter.Tags...),
		Resources:    append([]string(nil), raw.FrontMatter.Resources...),
		Draft:        raw.FrontMatter.Draft,
		Body:         raw.Body,
		ReadingTime:  EstimateReadingTime(raw.Body, opts.WordsPerMinute),
		SourceFile:   raw.FilePath,
		LastModified: raw.LastModified,
		Checksum:     raw.Checksum,
	}
}
