// Copyright © 2024 The gmlfmt authors

// Package formatter formats GML source code.
//
// Format parses its input, attaches comments to the syntax tree, builds a
// document for the tree and renders it at the configured width.  When
// Config.CheckRoundTrip is set the output is parsed again and rejected if
// its structure differs from the input's.
package formatter

import (
	"context"
	"errors"
	"strings"

	"github.com/luthersystems/gmlfmt/ast"
	"github.com/luthersystems/gmlfmt/comments"
	"github.com/luthersystems/gmlfmt/doc"
	"github.com/luthersystems/gmlfmt/parser/rdparser"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/luthersystems/gmlfmt/formatter"

// Format formats GML source code. If cfg is nil, DefaultConfig() is used.
func Format(source []byte, cfg *Config) ([]byte, error) {
	return FormatFile(source, "<stdin>", cfg)
}

// FormatFile formats GML source code, using filename for error messages.
func FormatFile(source []byte, filename string, cfg *Config) ([]byte, error) {
	return FormatContext(context.Background(), source, filename, cfg)
}

// FormatContext is FormatFile recording its stages as spans of the trace
// in ctx.
func FormatContext(ctx context.Context, source []byte, filename string, cfg *Config) (out []byte, err error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.normalize()
	f := newRun(cfg, filename)

	ctx, span := f.tracer.Start(ctx, "format", trace.WithAttributes(
		attribute.String("file", filename),
		attribute.Int("bytes", len(source)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	return f.run(ctx, source)
}

// Build returns the document Format renders for source, before line
// breaking.  It is useful for debugging layout decisions.
func Build(source []byte, filename string, cfg *Config) (doc.Doc, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	f := newRun(cfg.normalize(), filename)
	_, d, err := f.build(context.Background(), normalizeNewlines(source))
	return d, err
}

type formatRun struct {
	cfg    *Config
	file   string
	tracer trace.Tracer
	log    logrus.FieldLogger
}

func (f *formatRun) run(ctx context.Context, source []byte) ([]byte, error) {
	root, d, err := f.build(ctx, normalizeNewlines(source))
	if err != nil {
		return nil, err
	}

	var out []byte
	err = f.stage(ctx, "render", func(span trace.Span) error {
		text := doc.Render(d, doc.Options{
			PrintWidth: f.cfg.PrintWidth,
			TabWidth:   f.cfg.TabWidth,
			UseTabs:    f.cfg.UseTabs,
		})
		// Ensure exactly one trailing newline (if there's any content)
		text = strings.TrimRight(text, "\n")
		if text != "" {
			text += "\n"
		}
		out = []byte(text)
		span.SetAttributes(attribute.Int("bytes", len(out)))
		f.log.WithField("bytes", len(out)).Debug("rendered")
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !f.cfg.CheckRoundTrip {
		return out, nil
	}
	err = f.stage(ctx, "verify", func(trace.Span) error {
		return verify(f.file, root, out)
	})
	if err != nil {
		f.log.WithError(err).Warn("formatted output changed the program")
		return nil, err
	}
	return out, nil
}

// build parses src and returns its syntax tree along with the document
// printed for it.
func (f *formatRun) build(ctx context.Context, src []byte) (*ast.Document, doc.Doc, error) {
	var (
		root   *ast.Document
		groups []*ast.CommentGroup
	)
	err := f.stage(ctx, "parse", func(span trace.Span) error {
		var err error
		root, groups, err = rdparser.Parse(f.file, src)
		if err != nil {
			return err
		}
		span.SetAttributes(
			attribute.Int("statements", len(root.Statements)),
			attribute.Int("comments", len(groups)),
		)
		f.log.WithFields(logrus.Fields{
			"statements": len(root.Statements),
			"comments":   len(groups),
		}).Debug("parsed")
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = f.stage(ctx, "attach-comments", func(trace.Span) error {
		return comments.Attach(root, groups, src)
	})
	if err != nil {
		return nil, nil, err
	}

	var d doc.Doc
	err = f.stage(ctx, "print", func(trace.Span) error {
		var err error
		d, err = newPrinter(f.cfg, src).printRoot(root, groups)
		var uerr *UncommentedError
		if errors.As(err, &uerr) {
			uerr.File = f.file
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return root, d, nil
}

func newRun(cfg *Config, filename string) *formatRun {
	provider := cfg.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &formatRun{
		cfg:    cfg,
		file:   filename,
		tracer: provider.Tracer(tracerName),
		log:    cfg.Logger.WithField("file", filename),
	}
}

// stage runs fn in a child span of ctx named name.
func (f *formatRun) stage(ctx context.Context, name string, fn func(trace.Span) error) error {
	_, span := f.tracer.Start(ctx, name)
	defer span.End()
	if err := fn(span); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
