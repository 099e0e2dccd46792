package configuration

import (
	"fmt"
	"os"

	"github.com/clambin/vantage/internal/ideapad"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

type Configuration struct {
	Debug  bool                `yaml:"debug"`
	Device DeviceConfiguration `yaml:"device"`
	Helper string              `yaml:"helper"`
	Notify bool                `yaml:"notify"`
	Store  StoreConfiguration  `yaml:"store"`
	Server ServerConfiguration `yaml:"server"`
}

type DeviceConfiguration struct {
	Path string `yaml:"path"`
}

type StoreConfiguration struct {
	Path string `yaml:"path"`
}

type ServerConfiguration struct {
	Addr string `yaml:"addr"`
}

const defaultHelper = "pkexec tee"

// Default returns the configuration used when no configuration file is given.
func Default() Configuration {
	return Configuration{
		Device: DeviceConfiguration{Path: ideapad.DefaultPath},
		Helper: defaultHelper,
		Notify: true,
		Server: ServerConfiguration{Addr: "127.0.0.1:8080"},
	}
}

// Load reads a YAML configuration file. Fields missing from the file keep their default value.
func Load(path string) (Configuration, error) {
	cfg := Default()
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err = yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Device.Path == "" {
		return cfg, fmt.Errorf("%s: device.path is required", path)
	}
	if cfg.Helper == "" {
		cfg.Helper = defaultHelper
	}
	return cfg, nil
}

// Flags hold the command line flags. Flags that are set override the configuration file.
type Flags struct {
	ConfigFile string
	DevicePath string
	Helper     string
	StorePath  string
	Addr       string
	Debug      bool
	NoNotify   bool
}

// RegisterFlags adds the global flags to the application.
func RegisterFlags(app *kingpin.Application) *Flags {
	var f Flags
	app.Flag("config", "configuration file").Short('c').StringVar(&f.ConfigFile)
	app.Flag("debug", "log debug messages").Short('d').BoolVar(&f.Debug)
	app.Flag("device-path", "path name to the sysfs directory of the ideapad_acpi device (default: "+ideapad.DefaultPath+")").StringVar(&f.DevicePath)
	app.Flag("helper", "privilege helper command, or 'direct' when running as root (default: "+defaultHelper+")").StringVar(&f.Helper)
	app.Flag("store", "file holding the last applied settings").StringVar(&f.StorePath)
	app.Flag("addr", "listener address of the HTTP panel").StringVar(&f.Addr)
	app.Flag("no-notify", "don't send desktop notifications").BoolVar(&f.NoNotify)
	return &f
}

// Configuration returns the configuration file (or the defaults), with the flags applied.
func (f Flags) Configuration() (cfg Configuration, err error) {
	cfg = Default()
	if f.ConfigFile != "" {
		if cfg, err = Load(f.ConfigFile); err != nil {
			return cfg, err
		}
	}
	if f.Debug {
		cfg.Debug = true
	}
	if f.NoNotify {
		cfg.Notify = false
	}
	override(&cfg.Device.Path, f.DevicePath)
	override(&cfg.Helper, f.Helper)
	override(&cfg.Store.Path, f.StorePath)
	override(&cfg.Server.Addr, f.Addr)
	return cfg, nil
}

func override(target *string, value string) {
	if value != "" {
		*target = value
	}
}
