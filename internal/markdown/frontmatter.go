package markdown

import (
	"bytes"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured front matter, the
// Markdown body without delimiters, and any error encountered. The result
// is not yet validated; see ValidateFrontMatter.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, err
	}

	return envelopeToFrontMatter(meta), body, nil
}

// ValidateFrontMatter enforces the required post metadata contract: title,
// date and path must be present and the path must be rooted. Resource
// entries must be well-formed URLs.
func ValidateFrontMatter(fm interfaces.FrontMatter) error {
	return validation.ValidateStruct(&fm,
		validation.Field(&fm.Title, validation.Required),
		validation.Field(&fm.Date, validation.Required),
		validation.Field(&fm.Path, validation.Required, validation.By(pathIsRooted)),
		validation.Field(&fm.Resources, validation.Each(is.URL)),
	)
}

// BuildRawPost assembles an interfaces.RawPost from the supplied file path,
// raw content, and modification time. Invalid front matter surfaces as a
// MalformedFrontMatterError naming the file.
func BuildRawPost(path string, source []byte, modified time.Time) (*interfaces.RawPost, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, &MalformedFrontMatterError{File: path, Err: err}
	}
	if err := ValidateFrontMatter(fm); err != nil {
		return nil, &MalformedFrontMatterError{File: path, Err: err}
	}

	return &interfaces.RawPost{
		FilePath:     path,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

func pathIsRooted(value any) error {
	str, _ := value.(string)
	if !strings.HasPrefix(strings.TrimSpace(str), "/") {
		return validation.NewError("blog.frontmatter.path_not_rooted", "path must start with /")
	}
	return nil
}

type frontMatterEnvelope struct {
	Title     string         `yaml:"title"`
	Author    string         `yaml:"author"`
	Date      time.Time      `yaml:"date"`
	Path      string         `yaml:"path"`
	Summary   string         `yaml:"summary"`
	Tags      []string       `yaml:"tags"`
	Resources []string       `yaml:"resources"`
	Draft     bool           `yaml:"draft"`
	Custom    map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	return interfaces.FrontMatter{
		Title:     strings.TrimSpace(env.Title),
		Author:    strings.TrimSpace(env.Author),
		Date:      env.Date,
		Path:      strings.TrimSpace(env.Path),
		Summary:   strings.TrimSpace(env.Summary),
		Tags:      append([]string(nil), env.Tags...),
		Resources: append([]string(nil), env.Resources...),
		Draft:     env.Draft,
		Custom:    cloneMap(env.Custom),
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
