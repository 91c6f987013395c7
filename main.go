// Command pleat exports the crease pattern of an origami design model as
// an SVG diagram, after optimizing the model's scale.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chazu/pleat/pkg/diagram"
	"github.com/chazu/pleat/pkg/engine"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitLoad  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		configPath string
		baseDir    string
		verbose    bool
		code       = exitOK
	)

	cmd := &cobra.Command{
		Use:           "pleat [model]",
		Short:         "Export a crease pattern diagram",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := Defaults()
			if configPath != "" {
				var err error
				if cfg, err = LoadConfig(configPath); err != nil {
					return err
				}
			}
			if baseDir != "" {
				cfg.BaseDir = baseDir
			}
			if verbose {
				cfg.LogLevel = "debug"
			}

			level, err := cfg.Level()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
			diagram.SetLogger(logger)
			defer diagram.SetLogger(nil)

			app, err := NewApp(cfg, logger)
			if err != nil {
				return err
			}

			name := DefaultModel
			if len(args) > 0 {
				name = args[0]
			}
			rep, err := app.Export(name)
			if err != nil {
				var le *engine.LoadError
				if errors.As(err, &le) {
					code = exitLoad
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d lines (%s mode) -> %s\n",
				rep.Model, rep.Diagram.LineCount(), rep.Diagram.Mode, rep.DiagramPath)
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "TOML configuration file")
	f.StringVar(&baseDir, "base", "", "directory holding the model and the outputs (overrides base_dir)")
	f.BoolVarP(&verbose, "verbose", "v", false, "log every crease at debug level")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "pleat: %v\n", err)
		if code == exitOK {
			code = exitError
		}
	}
	return code
}
