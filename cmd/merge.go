// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"

	"github.com/vprotasov/armory-take-home/config"
	"github.com/vprotasov/armory-take-home/internal/logmerge"
	"github.com/vprotasov/armory-take-home/internal/sink"
)

// Distinct exit codes for startup failures. Everything past startup is
// best-effort: bad lines and bad files are logged and skipped, never
// fatal.
const (
	exitUsage       = 1
	exitNoSourceDir = 2
	exitListFailed  = 3
	exitNoLogFiles  = 4
)

func init() {
	cmd := &cobra.Command{
		Use:   "merge <source-dir>",
		Short: "Merge all log files in a directory to stdout in timestamp order",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
				os.Exit(exitUsage)
			}
			if c.Flags().Changed("extension") {
				cfg.Extension, _ = c.Flags().GetString("extension")
			}
			if c.Flags().Changed("queue-capacity") {
				cfg.QueueCapacity, _ = c.Flags().GetInt("queue-capacity")
			}
			if c.Flags().Changed("parse-threshold") {
				cfg.ParseThreshold, _ = c.Flags().GetInt("parse-threshold")
			}
			if c.Flags().Changed("diagnostics-file") {
				cfg.DiagnosticsFile, _ = c.Flags().GetString("diagnostics-file")
			}

			if code := runMerge(args[0], cfg, os.Stdout); code != 0 {
				os.Exit(code)
			}
		},
	}

	rootCmd.AddCommand(cmd)

	cmd.Flags().String("extension", "", "File name suffix to merge (default .log)")
	cmd.Flags().Int("queue-capacity", 0, "Output queue capacity (default 10000)")
	cmd.Flags().Int("parse-threshold", 0, "File count above which timestamps are parsed rather than string-compared (default 2000)")
	cmd.Flags().String("diagnostics-file", "", "Where error and warning output is written (default error_log.txt)")
}

// runMerge is the driver: validate the source directory, discover input
// files, redirect diagnostics, then hand everything to the engine and
// sink. Startup failures return a distinct exit code with a message on
// stderr; once merging starts the run always completes with whatever
// files remain valid.
func runMerge(dir string, cfg *config.Config, out io.Writer) int {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "source log directory was not found: %q\n", dir)
		return exitNoSourceDir
	}

	files, err := logmerge.DiscoverLogFiles(dir, cfg.Extension)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error listing the specified directory: %v\n", err)
		return exitListFailed
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no %s files were found in %q\n", cfg.Extension, dir)
		return exitNoLogFiles
	}

	// From here on diagnostics go to the configured file, never stdout.
	if err := setupDiagnostics(cfg.DiagnosticsFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to redirect diagnostics: %v\n", err)
	}

	mode := logmerge.ModeForFileCount(len(files), cfg.ParseThreshold)
	slog.Info("starting merge",
		slog.Int("files", len(files)),
		slog.String("mode", mode.String()))

	cursors := make([]*logmerge.Cursor, 0, len(files))
	for _, path := range files {
		cur, err := logmerge.Open(path, mode)
		if err != nil {
			slog.Error("skipping log file", slog.String("file", path), slog.Any("error", err))
			continue
		}
		cursors = append(cursors, cur)
	}

	output := sink.New(out, cfg.QueueCapacity)
	engine := logmerge.NewEngine(cursors, output)
	engine.Run()

	if err := output.Shutdown(); err != nil {
		slog.Error("failed to write merged output", slog.Any("error", err))
	}
	slog.Info("merge complete",
		slog.Int("files", len(cursors)),
		slog.Int64("lines", engine.LinesEmitted()))
	return 0
}

// setupDiagnostics points the default slog logger at the diagnostics
// file. With DEBUG or LOGMERGE_DEBUG set, diagnostics additionally fan
// out to stderr at debug level.
func setupDiagnostics(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create diagnostics file %s: %w", path, err)
	}

	var opts *slog.HandlerOptions
	debug := os.Getenv("DEBUG") != "" || os.Getenv("LOGMERGE_DEBUG") != ""
	if debug {
		opts = &slog.HandlerOptions{Level: slog.LevelDebug}
	}

	handler := slog.Handler(slog.NewTextHandler(f, opts))
	if debug {
		handler = slogmulti.Fanout(
			handler,
			slog.NewTextHandler(os.Stderr, opts),
		)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
