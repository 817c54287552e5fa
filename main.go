package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/faiface/mainthread"
	"github.com/memmaker/landingmarker/engine/util"
	"github.com/memmaker/landingmarker/game"
)

var (
	configFile  = flag.String("config", "", "YAML config file")
	sceneFile   = flag.String("scene", "", "NBT scene description, overrides scene.file")
	thrower     = flag.String("thrower", "", "actor the throw starts from, overrides scene.thrower")
	yaw         = flag.Float64("yaw", 0, "yaw in degrees for a single prediction")
	pitch       = flag.Float64("pitch", 0, "pitch in degrees for a single prediction")
	sweep       = flag.Bool("sweep", false, "predict a fan of pitches from the sweep config")
	window      = flag.Bool("window", false, "open an interactive window")
	logLevel    = flag.String("log-level", "", "error, warning, info or debug")
	exportScene = flag.String("export-scene", "", "write the loaded scene description as NBT and exit")
	exportMap   = flag.String("export-map", "", "write the voxel map of the loaded scene and exit")
)

func main() {
	flag.Parse()
	defer util.SyncLog()

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level := util.ParseLogLevel(config.LogLevel)
	util.SetLogLevel(level)
	if level == util.LogLevelDebug {
		util.SetLogCategories(util.LogAllCategories)
	}

	if *window {
		mainthread.Run(func() {
			if err := runWindow(config); err != nil {
				util.LogSystemError(err.Error())
				os.Exit(1)
			}
		})
		return
	}
	if err = run(config); err != nil {
		util.LogSystemError(err.Error())
		os.Exit(1)
	}
}

func loadConfig() (game.Config, error) {
	config := game.DefaultConfig()
	if *configFile != "" {
		loaded, err := game.LoadConfigFile(*configFile)
		if err != nil {
			return config, err
		}
		config = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			config.Scene.File = *sceneFile
		case "thrower":
			config.Scene.Thrower = *thrower
		case "yaw":
			config.Scene.Yaw = *yaw
			config.Sweep.Yaw = *yaw
		case "pitch":
			config.Scene.Pitch = *pitch
		case "log-level":
			config.LogLevel = *logLevel
		}
	})
	return config, config.Validate()
}

func run(config game.Config) error {
	if *exportScene != "" || *exportMap != "" {
		return runExport(config, *exportScene, *exportMap)
	}
	world, err := game.LoadWorldFromConfig(config.Scene)
	if err != nil {
		return err
	}
	out := newResultPrinter(os.Stdout)
	if *sweep {
		return runSweep(config, world, out)
	}
	return runPrediction(config, world, out)
}
