package commands

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const buildSiteMessageType = "blog.site.build"

// ResultCallback receives the build result produced by a site build. The
// callback is optional and is invoked synchronously from the handler.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a build command execution.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand requests a full site build from Markdown sources.
type BuildSiteCommand struct {
	ContentDir     string         `json:"content_dir"`
	OutputDir      string         `json:"output_dir"`
	BaseURL        string         `json:"base_url,omitempty"`
	IncludeDrafts  bool           `json:"include_drafts,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures the command carries usable directories and, when set, a
// well-formed base URL. Output is optional only for dry runs.
func (m BuildSiteCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ContentDir, validation.Required),
		validation.Field(&m.OutputDir, validation.Required.When(!m.DryRun)),
		validation.Field(&m.BaseURL, is.URL),
	)
}

// BuildFunc executes a site build for the supplied command. The root package
// provides the implementation; keeping it a function avoids an import cycle.
type BuildFunc func(ctx context.Context, msg BuildSiteCommand) (*generator.BuildResult, error)

// BuildSiteHandler orchestrates site builds on top of the shared command
// handler foundation.
type BuildSiteHandler struct {
	inner *Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided build function.
func NewBuildSiteHandler(build BuildFunc, logger interfaces.Logger, opts ...HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if build == nil {
			return errBuilderRequired
		}
		result, err := build(ctx, msg)
		if msg.ResultCallback != nil {
			msg.ResultCallback(ResultEnvelope{
				Result: result,
				Metadata: map[string]any{
					"operation": "build",
				},
			})
		}
		return err
	}

	handlerOpts := []HandlerOption[BuildSiteCommand]{
		WithLogger[BuildSiteCommand](baseLogger),
		WithOperation[BuildSiteCommand]("site.build"),
		WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{
				"content_dir": msg.ContentDir,
			}
			if out := strings.TrimSpace(msg.OutputDir); out != "" {
				fields["output_dir"] = out
			}
			if msg.IncludeDrafts {
				fields["include_drafts"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
