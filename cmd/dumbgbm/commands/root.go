// Package commands implements the dumbgbm command line.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sys/unix"

	"github.com/NeowayLabs/gbm"
	"github.com/NeowayLabs/gbm/drm"
	"github.com/NeowayLabs/gbm/dumb"
	"github.com/NeowayLabs/gbm/internal/config"
	"github.com/NeowayLabs/gbm/internal/logging"
)

// app is the state shared by the subcommands of one command tree.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

// Execute runs the dumbgbm command line until it finishes or the process
// is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
	defer stop()
	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	defaults := config.DefaultConfig()

	root := &cobra.Command{
		Use:   "dumbgbm",
		Short: "Inspect and exercise DRM dumb buffers",
		Long: `dumbgbm drives the dumb buffer backend directly: it probes a DRM card,
allocates and exports linear buffers, draws images into them and runs
allocation soak tests.

Settings come from flags, DUMBGBM_* environment variables and an optional
YAML config file.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file")
	pf.String("card", defaults.Card, "DRM device node, or the N of /dev/dri/cardN")
	pf.Bool("strict", defaults.Strict, "reject modifiers and non-scanout usage")
	pf.String("log-level", defaults.Log.Level, "log level")
	pf.String("log-file", defaults.Log.File, "also log to this file")
	pf.Bool("log-console", defaults.Log.Console, "log to stderr")

	a.bind(pf.Lookup("card"), "card")
	a.bind(pf.Lookup("strict"), "strict")
	a.bind(pf.Lookup("log-level"), "log.level")
	a.bind(pf.Lookup("log-file"), "log.file")
	a.bind(pf.Lookup("log-console"), "log.console")

	root.AddCommand(
		a.probeCommand(),
		a.allocCommand(),
		a.drawCommand(),
		a.soakCommand(),
	)
	return root
}

func (a *app) bind(flag *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if err := logging.Init(cfg.Log.Level, cfg.Log.File, cfg.Log.Console); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	a.cfg = cfg
	return nil
}

// openCard opens card, either a device node path or the N of
// /dev/dri/cardN.
func openCard(card string) (*os.File, error) {
	if n, err := strconv.Atoi(card); err == nil && n >= 0 {
		return drm.OpenCard(n)
	}
	return drm.Open(card)
}

// openDevice opens the configured card and builds a dumb device on it.
// The returned file must be closed after the device is destroyed.
func (a *app) openDevice(opts ...dumb.Option) (*os.File, *dumb.Device, error) {
	f, err := openCard(a.cfg.Card)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]dumb.Option{
		dumb.WithStrict(a.cfg.Strict),
		dumb.WithLogger(logging.Get()),
	}, opts...)

	dev, err := dumb.NewDevice(int(f.Fd()), gbm.BackendABIVersion, gbm.DefaultCore, opts...)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", a.cfg.Card, err)
	}
	return f, dev, nil
}
