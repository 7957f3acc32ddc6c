package circarr

import (
	"io"
	"os"

	"xorkevin.dev/klog"
)

type (
	configLogger struct {
		level  string
		output string
		writer io.Writer
	}
)

func logOutputFromString(s string) io.Writer {
	switch s {
	case "STDOUT":
		return os.Stdout
	case "STDERR":
		return os.Stderr
	default:
		return os.Stderr
	}
}

func newLogger(c configLogger) klog.Logger {
	w := c.writer
	if w == nil {
		w = logOutputFromString(c.output)
	}
	return klog.New(
		klog.OptMinLevelStr(c.level),
		klog.OptSerializer(klog.NewJSONSerializer(klog.NewSyncWriter(w))),
	)
}
