// Package pipeline runs a documentation build: it loads sources
// concurrently, processes the combined raw document and reports on the result.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/dox/internal/config"
	"github.com/dgallion1/dox/internal/incmgr"
	"github.com/dgallion1/dox/internal/parser"
	"github.com/dgallion1/dox/internal/procdoc"
	"github.com/dgallion1/dox/internal/rawdoc"
	"github.com/dgallion1/dox/internal/sigparser"
)

// Result is the outcome of a build. Doc is nil when the build failed.
type Result struct {
	Doc    *procdoc.Doc
	Links  []procdoc.UnresolvedLink
	Report *Report
}

// Builder wires sources, include manager and processor together.
type Builder struct {
	cfg  config.Config
	log  *slog.Logger
	sigs procdoc.SignatureParser
}

// NewBuilder creates a Builder that resolves includes against cfg.IncludeDirs.
// Each Build reads included files afresh.
func NewBuilder(cfg config.Config, log *slog.Logger) *Builder {
	return &Builder{
		cfg:  cfg,
		log:  log,
		sigs: sigparser.Parser{},
	}
}

type loaded struct {
	entries []*rawdoc.Entry
	source  SourceReport
}

// Build loads paths with at most LoadWorkers concurrent reads, keeps their
// order, and runs the processor over the combined entries. The Result and
// its Report are returned even when the build fails.
func (b *Builder) Build(ctx context.Context, paths []string) (*Result, error) {
	report := &Report{
		Kinds:     make(map[string]int),
		StartedAt: time.Now(),
	}

	report.setStatus(StatusLoading, "loading")
	sources, err := b.load(ctx, paths)
	if err != nil {
		report.fail("loading", err)
		return &Result{Report: report}, err
	}

	raw := &rawdoc.Doc{}
	var digest bytes.Buffer
	var size int64
	for _, s := range sources {
		raw.Append(s.entries...)
		report.Sources = append(report.Sources, s.source)
		digest.WriteString(s.source.ContentHash)
		size += s.source.Bytes
	}
	report.RawEntries = len(raw.Entries)
	report.ContentHash = ContentHashHex(digest.Bytes())
	b.log.Info("sources loaded",
		"sources", len(sources),
		"raw_entries", report.RawEntries,
		"size", humanize.Bytes(uint64(size)),
	)

	report.setStatus(StatusProcessing, "processing")
	inc := incmgr.New(b.cfg.IncludeDirs...)
	proc := procdoc.NewProcessor(b.log, inc, b.sigs, procdoc.Options{StrictLinks: b.cfg.StrictLinks})
	doc, err := proc.Run(raw)
	if err != nil {
		report.fail("processing", err)
		return &Result{Report: report}, fmt.Errorf("process documentation: %w", err)
	}

	report.Entries = len(doc.Entries)
	report.TopLevel = len(doc.TopLevel)
	report.SecondLevel = len(doc.SecondLevel)
	report.Unresolved = len(doc.Unresolved)
	for _, e := range doc.Entries {
		report.Kinds[string(e.Kind)]++
	}
	report.setStatus(StatusCompleted, "done")
	report.Duration = time.Since(report.StartedAt)

	b.log.Info("documentation built",
		"entries", report.Entries,
		"top_level", report.TopLevel,
		"unresolved_links", report.Unresolved,
		"content_hash", report.ContentHash,
	)
	return &Result{Doc: doc, Links: doc.Unresolved, Report: report}, nil
}

func (b *Builder) load(ctx context.Context, paths []string) ([]loaded, error) {
	out := make([]loaded, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.LoadWorkers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l, err := b.loadOne(path)
			if err != nil {
				return err
			}
			out[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Builder) loadOne(path string) (loaded, error) {
	log := b.log.With("source", path)

	p, err := parser.ForFile(path)
	if err != nil {
		return loaded{}, fmt.Errorf("load %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return loaded{}, fmt.Errorf("load %s: %w", path, err)
	}
	entries, err := p.Parse(bytes.NewReader(data), path)
	if err != nil {
		log.Error("parse failed", "error", err)
		return loaded{}, fmt.Errorf("load %s: %w", path, err)
	}
	for _, e := range entries {
		if e.Source == "" {
			e.Source = path
		}
	}
	log.Debug("source parsed", "entries", len(entries), "size", humanize.Bytes(uint64(len(data))))
	return loaded{
		entries: entries,
		source: SourceReport{
			Path:        path,
			Entries:     len(entries),
			Bytes:       int64(len(data)),
			ContentHash: ContentHashHex(data),
		},
	}, nil
}

// ExpandPaths replaces directories in paths with the supported source files
// below them, in lexical order. Explicit file paths are kept as given.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if parser.IsSupportedExtension(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
