package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/titusjan/hill-shading/internal/logger"
	"go.uber.org/zap"
)

// Setup parses the subcommand flags, loads the config and starts the
// logger. It exits the program when the config is unusable.
func Setup(flagSet *flag.FlagSet, flags *Flags) *Config {
	flagSet.Parse(os.Args[2:])

	cfg, err := Load(flags)
	if err != nil {
		fmt.Printf("\nERROR: %v\n\n", err)
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		log.Fatal(err)
	}

	logger.Debug("loaded config",
		zap.String("path", flags.ConfigPath()),
		zap.String("blend", cfg.Shade.Blend),
		zap.String("color_table", cfg.Shade.ColorTable),
		zap.Float64s("azimuths", cfg.Shade.Azimuths),
		zap.Float64s("elevations", cfg.Shade.Elevations))

	return cfg
}

// Run is the entrypoint of the config subcommand. It prints the effective
// config or writes it to a file.
func Run(flagSet *flag.FlagSet) {
	savePtr := flagSet.String("save", "", "Write the config to this path instead of printing it")
	userPtr := flagSet.Bool("user", false, "Write the config to the user config directory")

	cfg := Setup(flagSet, RegisterFlags(flagSet))
	defer logger.Sync()

	switch {
	case *savePtr != "":
		if err := cfg.SaveTo(*savePtr); err != nil {
			logger.Fatal("❌  Saving config failed", zap.Error(err))
		}
		logger.Info("✔️  Saved config", zap.String("path", *savePtr))
	case *userPtr:
		if err := cfg.Save(); err != nil {
			logger.Fatal("❌  Saving config failed", zap.Error(err))
		}
		logger.Info("✔️  Saved config", zap.String("dir", ConfigDir()))
	default:
		data, err := cfg.Marshal()
		if err != nil {
			logger.Fatal("❌  Encoding config failed", zap.Error(err))
		}
		fmt.Print(string(data))
	}
}
