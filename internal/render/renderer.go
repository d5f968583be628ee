// Package render provides the default TemplateRenderer used to produce
// output pages. It is backed by html/template with a small, fixed helper
// set; hosts can swap in any engine satisfying interfaces.TemplateRenderer.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

//go:embed templates/*.html
var builtinTemplates embed.FS

// HTMLRenderer renders pages through html/template. Templates are parsed
// lazily and exactly once so the renderer can be shared across workers.
type HTMLRenderer struct {
	baseDir string

	once sync.Once
	tpl  *template.Template
	err  error
}

var _ interfaces.TemplateRenderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer returns a renderer backed by the embedded default
// templates (post, listing, tag).
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// NewDirRenderer returns a renderer that parses .html and .tmpl files found
// under baseDir, letting sites replace the built-in templates wholesale.
func NewDirRenderer(baseDir string) *HTMLRenderer {
	return &HTMLRenderer{baseDir: baseDir}
}

func (r *HTMLRenderer) ensureTemplates() (*template.Template, error) {
	r.once.Do(func() {
		root := template.New("blog").Funcs(helperFuncs())

		if strings.TrimSpace(r.baseDir) == "" {
			r.tpl, r.err = root.ParseFS(builtinTemplates, "templates/*.html")
			return
		}

		var files []string
		err := filepath.WalkDir(r.baseDir, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".html" && ext != ".tmpl" {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			r.err = err
			return
		}
		if len(files) == 0 {
			r.err = fmt.Errorf("no templates found in %s", r.baseDir)
			return
		}
		r.tpl, r.err = root.ParseFiles(files...)
	})
	return r.tpl, r.err
}

// Render is an alias for RenderTemplate.
func (r *HTMLRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the named template with the supplied data. Names
// may be given with or without the .html suffix.
func (r *HTMLRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	tpl, err := r.ensureTemplates()
	if err != nil {
		return "", err
	}

	target := normalizeName(tpl, name)
	if target == "" {
		return "", fmt.Errorf("render: template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, target, data); err != nil {
		return "", fmt.Errorf("render template %q: %w", target, err)
	}
	return emit(buf, out...)
}

// RenderString parses and executes a one-off template body.
func (r *HTMLRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tpl, err := template.New("inline").Funcs(helperFuncs()).Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("render parse inline template: %w", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render inline template: %w", err)
	}
	return emit(buf, out...)
}

func normalizeName(tpl *template.Template, name string) string {
	name = strings.TrimSpace(name)
	candidates := []string{name, name + ".html", name + ".tmpl"}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if tpl.Lookup(candidate) != nil {
			return candidate
		}
	}
	return ""
}

func emit(buf bytes.Buffer, out ...io.Writer) (string, error) {
	content := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, content); err != nil {
			return "", err
		}
	}
	return content, nil
}

func helperFuncs() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(value any) template.HTML {
			switch v := value.(type) {
			case template.HTML:
				return v
			case string:
				return template.HTML(v)
			case []byte:
				return template.HTML(v)
			default:
				return template.HTML(fmt.Sprint(v))
			}
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"isoDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
	}
}
