package log

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	charmlog "github.com/charmbracelet/log"

	"evminspect/internal/logging"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
	closer      io.Closer
)

// Setup installs the charm logger as the slog default. Only the first call
// has an effect.
func Setup(debug bool) {
	initOnce.Do(func() {
		lg := logging.NewLogger()
		if debug || logging.IsDebug() {
			lg.SetLevel(charmlog.DebugLevel)
			lg.SetReportCaller(true)
		}
		closer = lg

		slog.SetDefault(slog.New(lg.Logger))
		initialized.Store(true)
	})
}

func Initialized() bool {
	return initialized.Load()
}

// Close flushes file output opened by Setup.
func Close() error {
	if closer == nil {
		return nil
	}
	return closer.Close()
}

func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		if Initialized() {
			slog.Error(fmt.Sprintf("Panic in %s", name),
				"panic", r,
				"stack", string(debug.Stack()))
		}
		if cleanup != nil {
			cleanup()
		}
	}
}
