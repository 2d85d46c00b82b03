// Copyright 2018 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-ethereum.  If not, see <http://www.gnu.org/licenses/>.

// Package log is a thin, structured logger in the shape of
// go-ethereum's own log package: leveled key/value logging over
// log/slog, with a text handler for terminals and other writers
// (NewTerminal) and a rotating JSON file handler (NewFile).
package log

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the interface every package in this module logs through.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	With(ctx ...any) Logger
}

// levelTrace sits below slog.LevelDebug, matching go-ethereum's log
// package which has a five-level scheme (Trace, Debug, Info, Warn,
// Error) while slog only has four; Trace is mapped onto a level one
// notch below Debug.
const levelTrace = slog.LevelDebug - 4

type logger struct {
	l *slog.Logger
}

func (l *logger) Trace(msg string, ctx ...any) { l.l.Log(context.Background(), levelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.l.Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.l.Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.l.Warn(msg, ctx...) }
// Error also attaches the caller frame that invoked it, the way
// go-ethereum's log package does for its top severity, so a surfaced
// RepoError or GenerationFetchFailed can be traced back to the exact
// call site without a stack trace dump.
func (l *logger) Error(msg string, ctx ...any) {
	caller := stack.Caller(1)
	l.l.Error(msg, append(ctx, "caller", caller.String())...)
}
func (l *logger) With(ctx ...any) Logger       { return &logger{l: l.l.With(ctx...)} }

var root Logger = NewTerminal(os.Stderr, slog.LevelInfo)

// Root returns the package-level default logger.
func Root() Logger { return root }

// SetRoot replaces the package-level default logger, e.g. to redirect
// to a file handler built with NewFile.
func SetRoot(l Logger) { root = l }

// NewTerminal builds a Logger that writes human-readable slog text
// lines to w. When w is a terminal (detected via go-isatty) it is
// wrapped with go-colorable; the handler itself emits no color codes,
// so the output is plain text either way. It mirrors go-ethereum's
// TerminalHandler.
func NewTerminal(w io.Writer, level slog.Level) Logger {
	out := w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = colorable.NewColorable(f)
	}
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return &logger{l: slog.New(h)}
}

// NewFile builds a Logger that writes JSON lines to a rotating file at
// path, rotating at maxSizeMB megabytes and keeping maxBackups old
// files, mirroring how go-ethereum wires lumberjack under its file
// handler.
func NewFile(path string, maxSizeMB, maxBackups int, level slog.Level) Logger {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &logger{l: slog.New(h)}
}

// Package-level convenience functions delegate to Root().
func Trace(msg string, ctx ...any) { root.Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }
func With(ctx ...any) Logger       { return root.With(ctx...) }
