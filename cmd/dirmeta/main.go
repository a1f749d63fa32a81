package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dirmeta/internal/app"
	"dirmeta/internal/config"
	"dirmeta/internal/domain"
	appErrors "dirmeta/internal/errors"
	"dirmeta/internal/infra/exif"
	"dirmeta/internal/infra/fs"
	"dirmeta/internal/infra/mime"
	"dirmeta/internal/logging"
	"dirmeta/internal/presentation"
	"dirmeta/internal/tui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		exitWithError(err)
	}
}

func newRootCommand() *cobra.Command {
	var flags config.Config

	cmd := &cobra.Command{
		Use:           "dirmeta",
		Short:         "Write file metadata and EXIF tags of a directory to file_data.json",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Resolve(flags)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}
			if cfg.TUI {
				return runTUI(cmd.Context(), cfg)
			}
			return run(cmd.Context(), cfg)
		},
	}
	config.BindFlags(cmd.Flags(), &flags)

	return cmd
}

type pipeline struct {
	scanner app.Scanner
	writer  app.Writer
}

func newPipeline(cfg config.Config, logger logging.Logger) pipeline {
	filesystem := fs.OSFS{}
	return pipeline{
		scanner: app.Scanner{
			FS:     filesystem,
			Types:  mime.Classifier{Sniff: cfg.Sniff},
			Exif:   exif.Reader{},
			Logger: logger,
		},
		writer: app.Writer{
			FS:     filesystem,
			Name:   cfg.Output,
			Logger: logger,
		},
	}
}

func (p *pipeline) run(ctx context.Context, dir string) (string, []domain.FileRecord, error) {
	records, err := p.scanner.Scan(ctx, dir)
	if err != nil {
		return "", nil, err
	}
	path, err := p.writer.Write(ctx, dir, records)
	if err != nil {
		return "", nil, err
	}
	return path, records, nil
}

func run(ctx context.Context, cfg config.Config) error {
	p := newPipeline(cfg, logging.New(os.Stderr, cfg.Verbose))

	path, records, err := p.run(ctx, cfg.Dir)
	if err != nil {
		return err
	}

	printer := presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}
	printer.PrintWritten(path, records)
	return nil
}

func runTUI(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Verbose lines would corrupt the alternate screen.
	p := newPipeline(cfg, logging.Logger{})
	program := tea.NewProgram(tui.NewModel(tui.Config{Dir: cfg.Dir}), tea.WithContext(ctx))
	p.scanner.OnProgress = func(current, total int, name string) {
		program.Send(tui.ScanProgressMsg{Current: current, Total: total, File: name})
	}

	result := make(chan error, 1)
	go func() {
		path, records, err := p.run(ctx, cfg.Dir)
		if err != nil {
			program.Send(tui.ErrorMsg{Err: errors.New(appErrors.UserMessage(err))})
		} else {
			program.Send(tui.DoneMsg{Path: path, Summary: domain.Summarize(records)})
		}
		result <- err
	}()

	final, runErr := program.Run()
	// A scan still in flight here was abandoned by the user; stop it before
	// anything is written.
	cancel()
	scanErr := <-result

	aborted := false
	if model, ok := final.(tui.Model); ok {
		aborted = model.Aborted()
	}
	return tuiOutcome(scanErr, runErr, aborted)
}

// tuiOutcome decides the result of a TUI run once the scan goroutine has
// returned. A written document is a success regardless of how the view
// ended.
func tuiOutcome(scanErr, runErr error, aborted bool) error {
	if scanErr == nil {
		return nil
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return appErrors.Wrap(appErrors.Internal, "tui", "", runErr)
	}
	if aborted && errors.Is(scanErr, context.Canceled) {
		return appErrors.Wrap(appErrors.Internal, "tui", "", errors.New("scan aborted"))
	}
	return scanErr
}

// exitCode maps err to the process status: 2 for usage errors, 1 otherwise.
func exitCode(err error) int {
	if kind, ok := appErrors.KindOf(err); ok && kind == appErrors.InvalidConfig {
		return 2
	}
	return 1
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(exitCode(err))
}
