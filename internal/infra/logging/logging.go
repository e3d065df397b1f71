// Package logging wires the xlog formatter and global level for the binary.
package logging

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

// ErrUnknownLevel is returned by ParseLevel for names it does not recognise.
var ErrUnknownLevel = errors.New("unknown log level")

var levels = map[string]xlog.LogLevel{
	"trace":    xlog.TRACE,
	"debug":    xlog.DEBUG,
	"info":     xlog.INFO,
	"notice":   xlog.NOTICE,
	"warning":  xlog.WARNING,
	"warn":     xlog.WARNING,
	"error":    xlog.ERROR,
	"critical": xlog.CRITICAL,
}

// ParseLevel maps a case-insensitive level name to an xlog level.
func ParseLevel(name string) (xlog.LogLevel, error) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return xlog.INFO, errors.Wrapf(ErrUnknownLevel, "%q", name)
	}
	return lvl, nil
}

// Setup sends all package loggers to w at the given level.
// In stdio mode w must be stderr: stdout carries the tool protocol.
func Setup(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	xlog.SetFormatter(xlog.NewStringFormatter(w))
	xlog.SetGlobalLogLevel(lvl)
	return nil
}
