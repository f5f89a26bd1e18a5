package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/faiface/mainthread"
	"github.com/memmaker/emberglow/config"
	"github.com/memmaker/emberglow/engine/particles"
	"github.com/memmaker/emberglow/engine/util"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file")
	listPresets := flag.Bool("presets", false, "list the built-in emitter presets and exit")
	flag.Parse()

	if *listPresets {
		for _, name := range particles.PresetNames() {
			fmt.Println(name)
		}
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	util.SetLogger(logger)
	util.GLOBAL_LOG_LEVEL = util.LevelFromString(cfg.Logging.Level)

	var runErr error
	mainthread.Run(func() {
		runErr = runDemo(cfg)
	})
	if runErr != nil {
		util.LogSystemError("demo failed", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}
}
