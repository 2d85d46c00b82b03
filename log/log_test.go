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

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerminalLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l := NewTerminal(&buf, slog.LevelInfo)

	l.Info("hello", "a", 1, "b", "two")

	out := buf.String()
	require.Contains(t, out, "hello")
	require.Contains(t, out, "a=1")
	require.Contains(t, out, "b=two")
}

func TestTerminalLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewTerminal(&buf, slog.LevelInfo)

	l.Debug("should not appear")
	require.Empty(t, buf.String())

	l.Warn("should appear")
	require.True(t, strings.Contains(buf.String(), "should appear"))
}

func TestErrorAttachesCaller(t *testing.T) {
	var buf bytes.Buffer
	l := NewTerminal(&buf, slog.LevelInfo)

	l.Error("repo failure")
	require.Contains(t, buf.String(), "caller=")
	require.Contains(t, buf.String(), "log_test.go")
}

func TestWithAddsPersistentFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewTerminal(&buf, slog.LevelInfo).With("component", "revset")

	l.Info("polled")
	require.Contains(t, buf.String(), "component=revset")
}
