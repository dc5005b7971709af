// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/decred/dcrgcs/gcs"
	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultLogLevel = "info"
	defaultHasher   = "siphash"

	// defaultM is the inverse false positive rate used when none is given.
	// It is the value used by version 2 committed filters.
	defaultM = 784931

	// defaultWorkers is the number of concurrent workers used to query a
	// set when none is given.
	defaultWorkers = 4
)

// config defines the global configuration options.
type config struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	LogFile     string `long:"logfile" description:"Also write logs to this file, rotating it as it grows"`
}

// setParams defines the options that are required to interpret a serialized
// set.
type setParams struct {
	N      uint64 `long:"n" description:"Number of distinct items the set was built with" required:"true"`
	M      uint64 `long:"m" description:"Inverse of the false positive rate the set was built with"`
	Salt   string `long:"salt" description:"Hex-encoded salt the set was built with"`
	Hasher string `long:"hasher" description:"Hash function the set was built with"`
}

// itemSource defines the options for reading items.
type itemSource struct {
	Hex bool `long:"hex" description:"Items are hex-encoded"`
}

// parseSalt decodes a hex-encoded salt.  The result is the zero salt when the
// string is empty.
func parseSalt(s string) (gcs.Salt, error) {
	var salt gcs.Salt
	if s == "" {
		return salt, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return salt, errors.Wrap(err, "malformed salt")
	}
	if len(b) != gcs.SaltSize {
		return salt, errors.Errorf("salt must be %d bytes instead of %d",
			gcs.SaltSize, len(b))
	}
	copy(salt[:], b)
	return salt, nil
}

// parseHasher returns the named hash function or the default one when the
// name is empty.
func parseHasher(name string) (gcs.KeyedHasher, error) {
	if name == "" {
		name = defaultHasher
	}
	return gcs.HasherByName(name)
}

// newParser returns a parser for the provided global options with every
// command registered.  Command output is written to w.
func newParser(cfg *config, w io.Writer) (*flags.Parser, error) {
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.SubcommandsOptional = true

	hasherHelp := fmt.Sprintf("  Available hash functions: %s.",
		strings.Join(gcs.HasherNames(), ", "))
	commands := []struct {
		name  string
		short string
		long  string
		data  any
	}{{
		name:  "build",
		short: "Build a set from a list of items",
		long: "Build a set from the items of a file, one per line, and " +
			"print its parameters." + hasherHelp,
		data: &buildCmd{M: defaultM, out: w},
	}, {
		name:  "query",
		short: "Query a set for the items given as arguments",
		long: "Query a set for the items given as arguments.  Every item " +
			"is reported as a probable member or definitely not a member.",
		data: &queryCmd{setParams: setParams{M: defaultM},
			Workers: defaultWorkers, out: w},
	}, {
		name:  "inspect",
		short: "Print the decoded values of a set",
		long:  "Print the ascending hashed values of a set.",
		data:  &inspectCmd{setParams: setParams{M: defaultM}, out: w},
	}, {
		name:  "salt",
		short: "Print a new random salt",
		long:  "Print a new cryptographically secure random salt in hex.",
		data:  &saltCmd{out: w},
	}}
	for _, c := range commands {
		_, err := parser.AddCommand(c.name, c.short, c.long, c.data)
		if err != nil {
			return nil, err
		}
	}
	return parser, nil
}
