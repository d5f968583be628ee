package markdown

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Hello World" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Author != "Kyle Mathews" {
		t.Fatalf("FrontMatter Author mismatch, got %q", fm.Author)
	}
	if fm.Path != "/hello-world" {
		t.Fatalf("FrontMatter Path mismatch, got %q", fm.Path)
	}
	if fm.Date.Year() != 2015 || fm.Date.Month() != time.May {
		t.Fatalf("FrontMatter Date mismatch: %v", fm.Date)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "getting-started" {
		t.Fatalf("FrontMatter Tags mismatch: %#v", fm.Tags)
	}
	if len(fm.Resources) != 1 || fm.Resources[0] != "https://www.gatsbyjs.com/docs" {
		t.Fatalf("FrontMatter Resources mismatch: %#v", fm.Resources)
	}
	if fm.Custom["featured"] != true {
		t.Fatalf("FrontMatter Custom flag missing: %#v", fm.Custom)
	}
	if !strings.Contains(string(body), "# Hello World") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
	if strings.Contains(string(body), "---") {
		t.Fatalf("expected delimiters stripped from body: %q", string(body))
	}
}

func TestValidateFrontMatter(t *testing.T) {
	valid := interfaces.FrontMatter{
		Title: "Post",
		Date:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		Path:  "/post",
	}
	if err := ValidateFrontMatter(valid); err != nil {
		t.Fatalf("expected valid front matter, got %v", err)
	}

	cases := []struct {
		name string
		fm   interfaces.FrontMatter
	}{
		{"missing title", interfaces.FrontMatter{Date: valid.Date, Path: "/post"}},
		{"missing date", interfaces.FrontMatter{Title: "Post", Path: "/post"}},
		{"missing path", interfaces.FrontMatter{Title: "Post", Date: valid.Date}},
		{"relative path", interfaces.FrontMatter{Title: "Post", Date: valid.Date, Path: "post"}},
		{"bad resource", interfaces.FrontMatter{Title: "Post", Date: valid.Date, Path: "/post", Resources: []string{"::not-a-url"}}},
	}
	for _, tc := range cases {
		if err := ValidateFrontMatter(tc.fm); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestBuildRawPost(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")
	modified := time.Now().UTC()

	post, err := BuildRawPost("testdata/basic.md", data, modified)
	if err != nil {
		t.Fatalf("BuildRawPost: %v", err)
	}

	if post.FilePath != "testdata/basic.md" {
		t.Fatalf("expected FilePath to be set, got %q", post.FilePath)
	}
	if post.LastModified != modified {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
	if len(post.Body) == 0 {
		t.Fatalf("expected Body to contain markdown content")
	}
}

func TestBuildRawPost_InvalidMetadata(t *testing.T) {
	data := readFixture(t, "testdata/missing-title.md")

	_, err := BuildRawPost("testdata/missing-title.md", data, time.Now())
	if err == nil {
		t.Fatalf("expected error for missing title")
	}
	if !errors.Is(err, ErrMalformedFrontMatter) {
		t.Fatalf("expected ErrMalformedFrontMatter, got %v", err)
	}

	var malformed *MalformedFrontMatterError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedFrontMatterError, got %T", err)
	}
	if malformed.File != "testdata/missing-title.md" {
		t.Fatalf("expected offending file in error, got %q", malformed.File)
	}
}
