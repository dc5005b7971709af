// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/decred/dcrgcs/internal/version"
	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// appName is the name of the application as shown in version information.
var appName = filepath.Base(os.Args[0])

// run parses the command line arguments and executes the selected command
// writing its output to w.
func run(args []string, w io.Writer) error {
	cfg := config{DebugLevel: defaultLogLevel}
	parser, err := newParser(&cfg, w)
	if err != nil {
		return err
	}

	// Configure logging after the global options are parsed and before any
	// command runs.
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cfg.ShowVersion {
			fmt.Fprintf(w, "%s version %s (Go version %s %s/%s)\n", appName,
				version.String(), runtime.Version(), runtime.GOOS,
				runtime.GOARCH)
			return nil
		}
		if cmd == nil {
			parser.WriteHelp(os.Stderr)
			return errors.New("no command specified")
		}

		if err := setLogLevels(cfg.DebugLevel); err != nil {
			return err
		}
		if cfg.LogFile != "" {
			if err := initLogRotator(cfg.LogFile); err != nil {
				return err
			}
			defer closeLogRotator()
		}
		ctlLog.Debugf("Version %s", version.String())
		return cmd.Execute(args)
	}

	_, err = parser.ParseArgs(args)
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
