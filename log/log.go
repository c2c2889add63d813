// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package log is a minimal leveled logger whose calls take a message
// followed by alternating key/value pairs. No other package in this module
// imports it.
// It never participates in control flow — callers branch on the error they
// already have, then log it.
package log

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type Lvl int

const (
	LvlError Lvl = iota
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) String() string {
	switch l {
	case LvlError:
		return "ERROR"
	case LvlWarn:
		return "WARN"
	case LvlInfo:
		return "INFO"
	case LvlDebug:
		return "DEBUG"
	case LvlTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

var (
	mu       sync.Mutex
	minLevel = LvlInfo
)

// SetLevel sets the minimum level that gets written out.
func SetLevel(l Lvl) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

func write(l Lvl, msg string, ctx []interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if l > minLevel {
		return
	}
	fmt.Fprintf(os.Stderr, "%s [%s] %s", time.Now().Format("01-02|15:04:05.000"), l, msg)
	for i := 0; i+1 < len(ctx); i += 2 {
		fmt.Fprintf(os.Stderr, " %v=%v", ctx[i], ctx[i+1])
	}
	fmt.Fprintln(os.Stderr)
}

// Error logs at error level: unrecoverable conditions, e.g. a Database
// backend faulting mid-transaction.
func Error(msg string, ctx ...interface{}) { write(LvlError, msg, ctx) }

// Warn logs at warn level: recoverable but noteworthy conditions.
func Warn(msg string, ctx ...interface{}) { write(LvlWarn, msg, ctx) }

// Info logs at info level.
func Info(msg string, ctx ...interface{}) { write(LvlInfo, msg, ctx) }

// Debug logs at debug level: per-call bookkeeping.
func Debug(msg string, ctx ...interface{}) { write(LvlDebug, msg, ctx) }

// Trace logs at trace level: per-opcode detail, off by default.
func Trace(msg string, ctx ...interface{}) { write(LvlTrace, msg, ctx) }
