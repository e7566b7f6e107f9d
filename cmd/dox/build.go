package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/dox/internal/config"
	"github.com/dgallion1/dox/internal/pipeline"
)

func (a *app) buildCmd() *cobra.Command {
	var out, reportPath string
	var watch bool
	cmd := &cobra.Command{
		Use:   "build [path...]",
		Short: "Build the documentation manifest",
		Long: `Loads YAML entry files and Markdown, HTML, text, DOCX or PDF pages, processes
them and writes the resulting manifest as JSON. Directories are searched
for supported files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return a.watch(cmd, args, out, reportPath)
			}
			res, err := a.build(a.cfg, args)
			if reportPath != "" && res != nil {
				if werr := writeJSON(reportPath, cmd.OutOrStdout(), res.Report); werr != nil {
					a.log.Error("write report failed", "error", werr)
				}
			}
			if err != nil {
				return err
			}
			return writeJSON(out, cmd.OutOrStdout(), res.Doc.Export())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the manifest to this file instead of stdout")
	cmd.Flags().StringVar(&reportPath, "report", "", "write the build report to this file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild whenever a source or include file changes")
	return cmd
}

// build runs the pipeline over args until it completes or the process is
// interrupted.
func (a *app) build(cfg config.Config, args []string) (*pipeline.Result, error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	paths, err := pipeline.ExpandPaths(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no documentation sources found in %v", args)
	}
	return pipeline.NewBuilder(cfg, a.log).Build(ctx, paths)
}

// watch rebuilds on every change until interrupted. Failed builds are
// logged and the last good manifest is left in place; the report is
// rewritten after every build.
func (a *app) watch(cmd *cobra.Command, args []string, out, reportPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return pipeline.NewBuilder(a.cfg, a.log).Watch(ctx, args, pipeline.DefaultDebounce,
		a.writeBuild(cmd.OutOrStdout(), out, reportPath))
}

// writeBuild returns a build callback that writes the report, if requested,
// and the manifest of every successful build.
func (a *app) writeBuild(stdout io.Writer, out, reportPath string) func(*pipeline.Result, error) {
	return func(res *pipeline.Result, err error) {
		if reportPath != "" && res != nil {
			if werr := writeJSON(reportPath, stdout, res.Report); werr != nil {
				a.log.Error("write report failed", "error", werr)
			}
		}
		if err != nil {
			a.log.Error("build failed", "error", err)
			return
		}
		if err := writeJSON(out, stdout, res.Doc.Export()); err != nil {
			a.log.Error("write manifest failed", "error", err)
		}
	}
}

// writeJSON writes v as indented JSON to path, or to stdout if path is empty.
func writeJSON(path string, stdout io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
