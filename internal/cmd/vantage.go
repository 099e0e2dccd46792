package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/clambin/vantage/internal/configuration"
	"github.com/clambin/vantage/internal/elevate"
	"github.com/clambin/vantage/internal/ideapad"
	"github.com/clambin/vantage/internal/notify"
	"github.com/clambin/vantage/internal/panel"
	"github.com/clambin/vantage/internal/server"
	"github.com/clambin/vantage/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

type application struct {
	app   *kingpin.Application
	flags *configuration.Flags

	status       *kingpin.CmdClause
	output       *string
	conservation *kingpin.CmdClause
	onOff        *string
	fan          *kingpin.CmdClause
	fanMode      *string
	restore      *kingpin.CmdClause
	serve        *kingpin.CmdClause
}

func newApplication(version string) *application {
	var a application
	a.app = kingpin.New(filepath.Base(os.Args[0]), "battery conservation and fan mode settings for Lenovo ideapad laptops")
	a.app.Version(version)
	a.app.HelpFlag.Short('h')
	a.flags = configuration.RegisterFlags(a.app)

	a.status = a.app.Command("status", "show the current settings").Default()
	a.output = a.status.Flag("output", "output format").Short('o').Default("text").Enum("text", "yaml", "json")

	a.conservation = a.app.Command("conservation", "switch battery conservation mode on or off")
	a.onOff = a.conservation.Arg("state", "on or off").Required().Enum("on", "off")

	fanModes := make([]string, 0, len(ideapad.FanModes))
	for _, mode := range ideapad.FanModes {
		fanModes = append(fanModes, mode.String())
	}
	a.fan = a.app.Command("fan", "select the fan mode")
	a.fanMode = a.fan.Arg("mode", "fan mode").Required().Enum(fanModes...)

	a.restore = a.app.Command("restore", "re-apply the last applied settings")
	a.serve = a.app.Command("serve", "run the HTTP control panel")
	return &a
}

// Main parses the command line and runs the selected command.
func Main(ctx context.Context, version string) error {
	return execute(ctx, version, os.Args[1:], prometheus.DefaultRegisterer, os.Stdout)
}

func execute(ctx context.Context, version string, args []string, promReg prometheus.Registerer, stdout io.Writer) error {
	a := newApplication(version)
	command, err := a.app.Parse(args)
	if err != nil {
		return err
	}
	cfg, err := a.flags.Configuration()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	log.WithField("version", version).Debug("vantage starting")

	switch command {
	case a.status.FullCommand():
		return runStatus(cfg, *a.output, stdout)
	case a.conservation.FullCommand():
		return runApply(ctx, cfg, ideapad.ConservationMode(*a.onOff == "on"))
	case a.fan.FullCommand():
		mode, err := ideapad.ParseFanMode(*a.fanMode)
		if err != nil {
			return err
		}
		return runApply(ctx, cfg, ideapad.Fan(mode))
	case a.restore.FullCommand():
		return runRestore(ctx, cfg)
	case a.serve.FullCommand():
		return runServe(ctx, cfg, promReg)
	}
	return fmt.Errorf("unknown command: %s", command)
}

func device(cfg configuration.Configuration) ideapad.Device {
	return ideapad.Device{Path: cfg.Device.Path}
}

func openStore(cfg configuration.Configuration) (*store.Store, error) {
	path := cfg.Store.Path
	if path == "" {
		var err error
		if path, err = store.DefaultPath(); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
	}
	return store.New(path), nil
}

func newPanel(cfg configuration.Configuration, st *store.Store) (*panel.Panel, error) {
	writer, err := elevate.New(cfg.Helper)
	if err != nil {
		return nil, err
	}
	observers := []panel.Observer{st}
	if cfg.Notify {
		if n, err := notify.New("Vantage"); err == nil {
			observers = append(observers, n)
		} else {
			log.WithError(err).Debug("desktop notifications disabled")
		}
	}
	return panel.New(device(cfg), writer, observers...)
}

func runStatus(cfg configuration.Configuration, output string, stdout io.Writer) error {
	state, err := device(cfg).ReadState()
	if err != nil {
		return err
	}
	switch output {
	case "yaml":
		out, err := yaml.Marshal(state)
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}
	conservation := "off"
	if state.ConservationMode {
		conservation = "on"
	}
	_, err = fmt.Fprintf(stdout, "conservation mode: %s\nfan mode:          %s\n", conservation, state.FanMode)
	return err
}

func runApply(ctx context.Context, cfg configuration.Configuration, setting ideapad.Setting) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	p, err := newPanel(cfg, st)
	if err != nil {
		return err
	}
	return p.Apply(ctx, setting)
}

func runRestore(ctx context.Context, cfg configuration.Configuration) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	saved, ok, err := st.LoadState()
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if !ok {
		log.WithField("path", st.Path).Info("no saved settings to restore")
		return nil
	}
	p, err := newPanel(cfg, st)
	if err != nil {
		return err
	}
	for _, setting := range saved.Settings() {
		if setting.ApplyTo(p.State()) == p.State() {
			log.WithField("setting", setting.String()).Debug("already set")
			continue
		}
		if err = p.Apply(ctx, setting); err != nil {
			return err
		}
	}
	return nil
}

func runServe(ctx context.Context, cfg configuration.Configuration, promReg prometheus.Registerer) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	var sp server.Panel
	p, err := newPanel(cfg, st)
	if err != nil {
		log.WithError(err).Error("unable to read device. serving error state")
	} else {
		sp = p
		promReg.MustRegister(p)
	}
	s := server.New(sp, err)
	promReg.MustRegister(s)

	log.WithField("addr", cfg.Server.Addr).Info("control panel started")
	defer log.Info("control panel stopped")

	var g errgroup.Group
	runHTTPServer(ctx, cfg.Server.Addr, s, &g)
	return g.Wait()
}

func runHTTPServer(ctx context.Context, addr string, h http.Handler, g *errgroup.Group) {
	s := &http.Server{Addr: addr, Handler: h}
	g.Go(func() error {
		err := s.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			log.WithError(err).Error("server failed to start")
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.Shutdown(stopCtx)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			log.WithError(err).Error("server failed to stop")
		}
		return err
	})
}
