// Copyright (c) 2015-2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progresslog

import (
	"sync"
	"time"

	"github.com/decred/slog"
)

// logInterval is the minimum amount of time between progress messages unless
// they are forced.
const logInterval = 10 * time.Second

// pickNoun returns the singular or plural form of a noun depending on the
// provided count.
func pickNoun(n uint64, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Logger provides periodic logging of progress towards some action such as
// reading the items of a set.
type Logger struct {
	sync.Mutex
	subsystemLogger slog.Logger
	progressAction  string

	// lastLogTime tracks the last time a log statement was shown.
	lastLogTime time.Time

	// These fields accumulate information about items between log statements.
	receivedItems uint64
	receivedBytes uint64

	// totalItems is the number of items seen over the life of the logger.
	totalItems uint64
}

// New returns a new item progress logger.
func New(progressAction string, logger slog.Logger) *Logger {
	return &Logger{
		lastLogTime:     time.Now(),
		progressAction:  progressAction,
		subsystemLogger: logger,
	}
}

// LogProgress accumulates the provided number of items and bytes and
// periodically (every 10 seconds) logs an information message to show progress
// to the user along with duration and totals included.
//
// The force flag may be used to force a log message to be shown regardless of
// the time the last one was shown.  Nothing is logged when there is nothing
// outstanding.
//
// The progress message is templated as follows:
//  {progressAction} {numProcessed} {items|item} ({numBytes} {bytes|byte}) in
//  the last {timePeriod} ({totalItems} total)
func (l *Logger) LogProgress(numItems, numBytes uint64, forceLog bool) {
	l.Lock()
	defer l.Unlock()

	l.receivedItems += numItems
	l.receivedBytes += numBytes
	l.totalItems += numItems
	now := time.Now()
	duration := now.Sub(l.lastLogTime)
	if !forceLog && duration < logInterval {
		return
	}
	if l.receivedItems == 0 {
		return
	}

	l.subsystemLogger.Infof("%s %d %s (%d %s) in the last %0.2fs (%d total)",
		l.progressAction, l.receivedItems,
		pickNoun(l.receivedItems, "item", "items"), l.receivedBytes,
		pickNoun(l.receivedBytes, "byte", "bytes"), duration.Seconds(),
		l.totalItems)

	l.receivedItems = 0
	l.receivedBytes = 0
	l.lastLogTime = now
}

// TotalItems returns the number of items seen over the life of the logger.
func (l *Logger) TotalItems() uint64 {
	l.Lock()
	defer l.Unlock()
	return l.totalItems
}

// SetLastLogTime updates the last time data was logged to the provided time.
func (l *Logger) SetLastLogTime(time time.Time) {
	l.Lock()
	l.lastLogTime = time
	l.Unlock()
}
