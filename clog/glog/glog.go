// Package glog registers github.com/golang/glog as the clog backend.
// Import it for side effects from the main package.
package glog

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/cayleygraph/ontoeval/clog"
	"github.com/golang/glog"
)

func init() {
	clog.SetLogger(Logger{})
}

type Logger struct{}

func (Logger) Infof(format string, args ...interface{}) {
	glog.InfoDepth(3, fmt.Sprintf(format, args...))
}
func (Logger) Warningf(format string, args ...interface{}) {
	glog.WarningDepth(3, fmt.Sprintf(format, args...))
}
func (Logger) Errorf(format string, args ...interface{}) {
	glog.ErrorDepth(3, fmt.Sprintf(format, args...))
}
func (Logger) Fatalf(format string, args ...interface{}) {
	glog.FatalDepth(3, fmt.Sprintf(format, args...))
}

func (Logger) V(level int) bool {
	return bool(glog.V(glog.Level(level)))
}

// SetV updates glog's -v flag in place, so it only works once flags are registered.
func (Logger) SetV(v int) {
	if f := flag.Lookup("v"); f != nil {
		if err := f.Value.Set(strconv.Itoa(v)); err == nil {
			return
		}
	}
	glog.Warningf("changing log level is not supported; run command with '-v %d' flag", v)
}
