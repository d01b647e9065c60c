package config

import (
	"flag"

	"github.com/Faultbox/hopper/internal/controller"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLevel      = flag.String("level", "", "Level file")
	flagScript     = flag.String("script", "", "Input script file")
	flagTicks      = flag.Int("ticks", -1, "Number of ticks to run (0 = until the script ends)")
	flagTickRate   = flag.Int("tick-rate", 0, "Ticks per second")
	flagRealtime   = flag.Bool("realtime", false, "Pace ticks to wall-clock time")
	flagWatch      = flag.String("watch", "", "Settings file to hot-reload")
	flagFlycam     = flag.Bool("flycam", false, "Fly instead of walking")
	flagAllUnlocks = flag.Bool("all-unlocks", false, "Grant every movement ability")
	flagDumpConfig = flag.String("dump-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// DumpPath returns the --dump-config path.
func DumpPath() string {
	return *flagDumpConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLevel != "" {
		cfg.Level = *flagLevel
	}
	if *flagScript != "" {
		cfg.Script = *flagScript
	}
	if *flagTicks >= 0 {
		cfg.Simulation.Ticks = *flagTicks
	}
	if *flagTickRate > 0 {
		cfg.Simulation.TickRate = *flagTickRate
	}
	if *flagRealtime {
		cfg.Simulation.Realtime = true
	}
	if *flagWatch != "" {
		cfg.Watch.Enabled = true
		cfg.Watch.SettingsFile = *flagWatch
	}
	if *flagFlycam {
		cfg.Controller.Flycam = true
	}
	if *flagAllUnlocks {
		u := controller.AllUnlocks()
		cfg.Unlocks = &u
	}
}
