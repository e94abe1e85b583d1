package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/commands/options"
	"tableflip.dev/tiles/pkg/store"
)

var (
	oo = &options.OutputOptions{}
	lo = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:          "tiles",
		Short:        options.Wrap80("A dashboard of widget tiles on the command line."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddLogArgs(cmd, lo)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addSpaces(topLevel)
	addTiles(topLevel)
	addWidget(topLevel)
	addSettings(topLevel)
	addDarkMode(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addReset(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
}

// session holds what a command needs to reach the stored dashboard.
type session struct {
	cfg      store.Config
	svc      *app.Service
	log      *slog.Logger
	closeLog func() error
}

// openSession loads config, store and service. Logs go to --log-file, or
// to logTo when the flag is unset.
func openSession(ctx context.Context, logTo io.Writer) (*session, error) {
	log, closeLog, err := lo.Logger(logTo)
	if err != nil {
		return nil, err
	}
	s := &session{log: log, closeLog: closeLog}
	if s.cfg, err = store.LoadConfig(); err != nil {
		s.Close()
		return nil, err
	}
	p, err := store.Load(s.cfg, log)
	if err != nil {
		s.Close()
		return nil, err
	}
	if s.svc, err = app.New(ctx, p, log); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) Close() {
	_ = s.closeLog()
}

// withSession runs fn against a freshly loaded service, logging to stderr.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx, os.Stderr)
	if err != nil {
		return oo.HandleError(err)
	}
	defer s.Close()
	return oo.HandleError(fn(ctx, s))
}
