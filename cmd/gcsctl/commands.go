// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/decred/dcrgcs/gcs"
	"github.com/decred/dcrgcs/internal/progresslog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// maxItemSize is the maximum size of a line of an items file.
const maxItemSize = 1 << 20

// readItems reads one item per line from r.  Blank lines are skipped.  When
// hexItems is set, every line is hex-decoded.
func readItems(r io.Reader, hexItems bool, progress *progresslog.Logger) ([][]byte, error) {
	var items [][]byte
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxItemSize)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		item := bytes.Clone(line)
		if hexItems {
			decoded, err := hex.DecodeString(string(line))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			item = decoded
		}
		items = append(items, item)
		if progress != nil {
			progress.LogProgress(1, uint64(len(item)), false)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read items")
	}
	return items, nil
}

// decodeItems converts items given on the command line.
func decodeItems(args []string, hexItems bool) ([][]byte, error) {
	items := make([][]byte, 0, len(args))
	for _, arg := range args {
		if !hexItems {
			items = append(items, []byte(arg))
			continue
		}
		item, err := hex.DecodeString(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "item %q", arg)
		}
		items = append(items, item)
	}
	return items, nil
}

// openInput opens the named file or returns stdin for "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open items")
	}
	return f, nil
}

// loadSet reads a serialized set from the payload file and interprets it with
// the provided parameters.
func loadSet(payload string, params *setParams) (*gcs.Set, error) {
	h, err := parseHasher(params.Hasher)
	if err != nil {
		return nil, err
	}
	salt, err := parseSalt(params.Salt)
	if err != nil {
		return nil, err
	}
	var data []byte
	if payload != "" {
		data, err = os.ReadFile(payload)
		if err != nil {
			return nil, errors.Wrap(err, "unable to read payload")
		}
	}
	return gcs.FromBytes(h, params.N, params.M, salt, data)
}

// buildCmd builds a set from a file of items.
type buildCmd struct {
	itemSource
	In     string `long:"in" description:"File with one item per line or - for stdin" required:"true"`
	M      uint64 `long:"m" description:"Inverse of the false positive rate"`
	Salt   string `long:"salt" description:"Hex-encoded salt (random when not set)"`
	Hasher string `long:"hasher" description:"Hash function"`
	Limit  uint64 `long:"limit" description:"Maximum number of distinct items (0 for no limit)"`
	Out    string `long:"out" description:"Write the serialized set to this file instead of printing it"`

	out io.Writer
}

// Execute builds the set and prints its parameters.
func (c *buildCmd) Execute(args []string) error {
	if len(args) != 0 {
		return errors.Errorf("unexpected arguments %q", args)
	}
	h, err := parseHasher(c.Hasher)
	if err != nil {
		return err
	}
	salt := gcs.NewSalt()
	if c.Salt != "" {
		salt, err = parseSalt(c.Salt)
		if err != nil {
			return err
		}
	}

	f, err := openInput(c.In)
	if err != nil {
		return err
	}
	progress := progresslog.New("Read", ctlLog)
	items, err := readItems(f, c.Hex, progress)
	f.Close()
	if err != nil {
		return err
	}
	progress.LogProgress(0, 0, true)

	b := gcs.NewBuilder(h, c.M, salt, c.Limit)
	for _, item := range items {
		if err := b.Add(item); err != nil {
			return err
		}
	}
	ctlLog.Debugf("Building set from %d distinct items of %d", b.Len(),
		len(items))
	set, err := b.Build()
	if err != nil {
		return err
	}

	if c.Out != "" {
		if err := os.WriteFile(c.Out, set.Bytes(), 0644); err != nil {
			return errors.Wrap(err, "unable to write set")
		}
		ctlLog.Infof("Wrote %d bytes to %s", set.Size(), c.Out)
	}

	fmt.Fprintf(c.out, "N:    %d\n", set.N())
	fmt.Fprintf(c.out, "M:    %d\n", set.M())
	fmt.Fprintf(c.out, "P:    %d\n", set.P())
	salt = set.Salt()
	fmt.Fprintf(c.out, "Salt: %x\n", salt[:])
	fmt.Fprintf(c.out, "Size: %d\n", set.Size())
	fmt.Fprintf(c.out, "Hash: %v\n", set.Hash())
	if c.Out == "" {
		fmt.Fprintf(c.out, "Data: %x\n", set.Bytes())
	}
	return nil
}

// queryCmd queries a set for items.
type queryCmd struct {
	setParams
	itemSource
	Payload string `long:"payload" description:"File with the serialized set"`
	Workers int    `long:"workers" description:"Number of items to query concurrently"`
	Any     bool   `long:"any" description:"Only report whether any of the items is a probable member"`

	out io.Writer
}

// Execute queries the set and prints a line for every item.
func (c *queryCmd) Execute(args []string) error {
	if len(args) == 0 {
		return errors.New("no items to query")
	}
	if c.Workers < 1 {
		return errors.Errorf("the number of workers must be at least 1 "+
			"instead of %d", c.Workers)
	}
	items, err := decodeItems(args, c.Hex)
	if err != nil {
		return err
	}
	set, err := loadSet(c.Payload, &c.setParams)
	if err != nil {
		return err
	}

	if c.Any {
		fmt.Fprintf(c.out, "any: %v\n", set.MatchAny(items))
		return nil
	}

	// The set is immutable, so it is queried from multiple goroutines.
	matches := make([]bool, len(items))
	var g errgroup.Group
	g.SetLimit(c.Workers)
	for i := range items {
		i := i
		g.Go(func() error {
			ok, err := set.Contains(items[i])
			if err != nil {
				return errors.Wrapf(err, "unable to query %q", args[i])
			}
			matches[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, arg := range args {
		result := "no"
		if matches[i] {
			result = "maybe"
		}
		fmt.Fprintf(c.out, "%s: %s\n", arg, result)
	}
	return nil
}

// inspectCmd prints the decoded values of a set.
type inspectCmd struct {
	setParams
	Payload string `long:"payload" description:"File with the serialized set"`

	out io.Writer
}

// Execute prints the set parameters followed by its values.
func (c *inspectCmd) Execute(args []string) error {
	if len(args) != 0 {
		return errors.Errorf("unexpected arguments %q", args)
	}
	set, err := loadSet(c.Payload, &c.setParams)
	if err != nil {
		return err
	}
	values, err := set.Values()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%v\n", set)
	fmt.Fprintf(c.out, "Hash: %v\n", set.Hash())
	for _, v := range values {
		fmt.Fprintf(c.out, "%d\n", v)
	}
	if uint64(len(values)) != set.N() {
		ctlLog.Infof("%d of %d items collided", set.N()-uint64(len(values)),
			set.N())
	}
	return nil
}

// saltCmd prints a random salt.
type saltCmd struct {
	out io.Writer
}

// Execute prints a new salt.
func (c *saltCmd) Execute(args []string) error {
	if len(args) != 0 {
		return errors.Errorf("unexpected arguments %q", args)
	}
	salt := gcs.NewSalt()
	fmt.Fprintf(c.out, "%x\n", salt[:])
	return nil
}
