package options

import (
	"io"
	"log/slog"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Verbose bool
	File    string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug details.")
	cmd.PersistentFlags().StringVar(&o.File, "log-file", "",
		"Write logs to this file instead of stderr.")
}

// Logger builds the process logger. Without --log-file it writes to
// fallback; the returned close func is always safe to call.
func (o *LogOptions) Logger(fallback io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	w := fallback
	closer := func() error { return nil }
	if o.File != "" {
		path, err := homedir.Expand(o.File)
		if err != nil {
			return nil, closer, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, err
		}
		w, closer = f, f.Close
	}
	if w == nil {
		w = io.Discard
	}
	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return log, closer, nil
}
