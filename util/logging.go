package util

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging sends the standard logger to a rotating log file, and to
// stdout as well when verbose is set. maxSize is in megabytes.
func SetupLogging(path string, maxSize, backups int, verbose bool) io.Closer {
	rotator := &lumberjack.Logger{
		Filename:   ExpandUser(path),
		MaxSize:    maxSize,
		MaxBackups: backups,
	}
	var out io.Writer = rotator
	if verbose {
		out = io.MultiWriter(os.Stdout, rotator)
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.SetOutput(out)
	return rotator
}
