package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/kmmndr/invisibility_cloak/internal/cloak"
	"github.com/kmmndr/invisibility_cloak/internal/config"
	"github.com/kmmndr/invisibility_cloak/internal/video"
)

func main() {
	var configPath string
	var device string
	var showMask bool
	var debug bool

	flag.StringVar(&configPath, "config", "", "Configuration file (.yaml, .yml or .ini)")
	flag.StringVar(&device, "device", "", "Camera index or video file, overrides the configuration")
	flag.BoolVar(&showMask, "show-mask", false, "Display the refined mask in a second window")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	logger := initLogger(debug)

	opts := config.Default()
	if configPath != "" {
		var err error
		if opts, err = config.Load(configPath); err != nil {
			logger.WithError(err).Fatal("Unable to load configuration")
		}
	}
	if device != "" {
		opts.Device = device
	}
	if showMask {
		opts.ShowMask = true
	}
	if err := opts.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	os.Exit(run(opts, logger))
}

func run(opts config.Options, logger *logrus.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := cloak.NewPipeline(
		cloak.NewSegmenter(opts.Ranges, opts.BlurKernelSize),
		cloak.NewRefiner(opts.MorphKernelSize),
	)
	defer pipeline.Close()

	background := cloak.NewBackgroundCapture(opts.WarmupFrames, opts.WarmupDelay(), opts.Policy(), logger)

	controller := cloak.NewController(cloak.ControllerOptions{
		Device:       opts.Device,
		PollInterval: opts.PollInterval(),
		QuitKey:      opts.QuitKey[0],
		WindowName:   opts.WindowName,
		ShowMask:     opts.ShowMask,
	}, openStream(logger), newWindow, background, pipeline, logger)

	logger.WithFields(logrus.Fields{
		"run_id": controller.RunID(),
		"device": opts.Device,
		"ranges": len(opts.Ranges),
	}).Info("Starting invisibility cloak")

	if _, err := controller.Run(ctx); err != nil {
		logger.WithError(err).WithField("run_id", controller.RunID()).Error("Invisibility cloak failed")
		return 1
	}
	return 0
}

func openStream(logger logrus.FieldLogger) cloak.SourceOpener {
	return func(device string) (cloak.Source, error) {
		stream, err := video.OpenStream(device)
		if err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"device": stream.Device(),
			"fps":    stream.Fps(),
		}).Info("Video frame rate")
		return stream, nil
	}
}

func newWindow(name string) cloak.Display {
	return video.NewWindow(name)
}

func initLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
