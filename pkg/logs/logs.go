package logs

import (
	"bytes"
	goflag "flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

// asymcrypt writes logs in klog text format. It does not support named levels
// (aka. severity), instead it uses arbitrary levels. Messages at level 0 are
// always shown, higher levels are shown when --log-level is raised.
//
// Further reading:
//   - [Kubernetes logging conventions](https://github.com/kubernetes/community/blob/master/contributors/devel/sig-instrumentation/logging.md)
//   - [Why not named levels, like Info/Warning/Error?](https://github.com/go-logr/logr?tab=readme-ov-file#why-not-named-levels-like-infowarningerror)

// All but the essential logging flags will be hidden to avoid overwhelming
// the user. The hidden flags can still be used. For example a user who wants
// logs in files can still set --log_file=/tmp/asymcrypt.log on the command
// line.
var visibleFlagNames = map[string]bool{
	"v":       true,
	"vmodule": true,
}

const (
	// Standard log verbosity levels.
	// Use these instead of integers in asymcrypt code.
	Info  = 0
	Debug = 1
	Trace = 2
)

// AddFlags adds log related flags to the supplied flag set.
func AddFlags(fs *pflag.FlagSet) {
	var kfs goflag.FlagSet
	klog.InitFlags(&kfs)

	var tfs pflag.FlagSet
	tfs.AddGoFlagSet(&kfs)
	tfs.VisitAll(func(f *pflag.Flag) {
		if !visibleFlagNames[f.Name] {
			_ = tfs.MarkHidden(f.Name)
		}

		// Since `--v` (which is the long form of `-v`) isn't the standard in
		// our projects, let's rename it to the more common `--log-level`,
		// keeping `-v` as its shorthand.
		if f.Name == "v" {
			f.Name = "log-level"
			f.Shorthand = "v"
			f.Usage = fmt.Sprintf("%s. 0=Info, 1=Debug, 2=Trace", f.Usage)
		}
	})
	fs.AddFlagSet(&tfs)
}

// Initialize configures the global loggers: log, slog, and klog. All are
// configured to write in the same format.
func Initialize() {
	// slog.Default now uses klog as its backend. Setting the default slog
	// logger also reroutes the standard library's log package, so libraries
	// which still use log.Printf end up in the same stream as asymcrypt's own
	// messages.
	slog.SetDefault(slog.New(logr.ToSlogHandler(klog.Background())))
}

// Flush flushes any buffered log data. klog buffers when logging to files, so
// commands flush before exiting.
func Flush() {
	klog.Flush()
}

// LogToSlogWriter routes messages written to it to the given slog logger,
// tagging them with a source. Messages that look like errors are logged as
// errors, everything else as info.
type LogToSlogWriter struct {
	Slog   *slog.Logger
	Source string
}

func (w LogToSlogWriter) Write(p []byte) (n int, err error) {
	// log.Printf writes a newline at the end of the message, so we need to
	// trim it.
	p = bytes.TrimSuffix(p, []byte("\n"))

	message := string(p)
	if strings.Contains(message, "error") ||
		strings.Contains(message, "failed") {
		w.Slog.With("source", w.Source).Error(message)
	} else {
		w.Slog.With("source", w.Source).Info(message)
	}
	return len(p), nil
}
