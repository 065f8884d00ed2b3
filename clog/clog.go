// Copyright 2016 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package clog provides a logging interface for ontoeval packages.
package clog

import (
	"io"
	"log"
	"os"
)

// Logger is the clog logging interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// Leveler is implemented by loggers that keep their own verbosity setting.
// When the active logger implements it, V and SetV are delegated to it.
type Leveler interface {
	V(level int) bool
	SetV(level int)
}

var logger Logger = NewStdLogger(os.Stderr)

// SetLogger set the clog logging implementation.
func SetLogger(l Logger) { logger = l }

var verbosity int

// V returns whether the current clog verbosity is above the specified level.
func V(level int) bool {
	if l, ok := logger.(Leveler); ok {
		return l.V(level)
	}
	return verbosity >= level
}

// SetV sets the clog verbosity level.
func SetV(level int) {
	if l, ok := logger.(Leveler); ok {
		l.SetV(level)
		return
	}
	verbosity = level
}

// Infof logs information level messages.
func Infof(format string, args ...interface{}) {
	if logger != nil {
		logger.Infof(format, args...)
	}
}

// Warningf logs warning level messages.
func Warningf(format string, args ...interface{}) {
	if logger != nil {
		logger.Warningf(format, args...)
	}
}

// Errorf logs error level messages.
func Errorf(format string, args ...interface{}) {
	if logger != nil {
		logger.Errorf(format, args...)
	}
}

// Fatalf logs fatal messages and terminates the program.
func Fatalf(format string, args ...interface{}) {
	if logger != nil {
		logger.Fatalf(format, args...)
	}
}

// NewStdLogger returns a Logger writing through the standard library logger to w.
func NewStdLogger(w io.Writer) Logger {
	return stdlog{l: log.New(w, "", log.LstdFlags)}
}

// stdlog wraps the standard library logger.
type stdlog struct {
	l *log.Logger
}

func (s stdlog) Infof(format string, args ...interface{})    { s.l.Printf(format, args...) }
func (s stdlog) Warningf(format string, args ...interface{}) { s.l.Printf("WARN: "+format, args...) }
func (s stdlog) Errorf(format string, args ...interface{})   { s.l.Printf("ERROR: "+format, args...) }
func (s stdlog) Fatalf(format string, args ...interface{})   { s.l.Fatalf("FATAL: "+format, args...) }
