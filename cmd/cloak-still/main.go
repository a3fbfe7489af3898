package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kmmndr/invisibility_cloak/internal/cloak"
	"github.com/kmmndr/invisibility_cloak/internal/config"
	"github.com/kmmndr/invisibility_cloak/internal/video"
)

func main() {
	var configPath string
	var backgroundPath string
	var imagePath string
	var outputPath string
	var maskPath string

	flag.StringVar(&configPath, "config", "", "Configuration file (.yaml, .yml or .ini)")
	flag.StringVar(&backgroundPath, "background", "", "Background image")
	flag.StringVar(&imagePath, "image", "", "Image containing the cloak")
	flag.StringVar(&outputPath, "output", "cloak-output.jpg", "Composited image")
	flag.StringVar(&maskPath, "mask", "", "Optional refined mask image")
	flag.Parse()

	if backgroundPath == "" || imagePath == "" {
		fmt.Println("Error: missing background or image option")
		os.Exit(1)
	}

	logger := logrus.New()

	opts := config.Default()
	if configPath != "" {
		var err error
		if opts, err = config.Load(configPath); err != nil {
			logger.WithError(err).Fatal("Unable to load configuration")
		}
	}

	if err := composite(opts, backgroundPath, imagePath, outputPath, maskPath, logger); err != nil {
		logger.WithError(err).Fatal("Unable to composite image")
	}
}

func composite(opts config.Options, backgroundPath, imagePath, outputPath, maskPath string, logger logrus.FieldLogger) error {
	plate, err := video.LoadImage(backgroundPath)
	if err != nil {
		return err
	}
	defer plate.Close()

	live, err := video.LoadImage(imagePath)
	if err != nil {
		return err
	}
	defer live.Close()

	pipeline := cloak.NewPipeline(
		cloak.NewSegmenter(opts.Ranges, opts.BlurKernelSize),
		cloak.NewRefiner(opts.MorphKernelSize),
	)
	defer pipeline.Close()

	output, mask, err := pipeline.Process(live, plate)
	if err != nil {
		return err
	}
	defer output.Close()
	defer mask.Close()

	if err := video.SaveImage(outputPath, output); err != nil {
		return err
	}
	if maskPath != "" {
		if err := video.SaveImage(maskPath, mask); err != nil {
			return err
		}
	}

	logger.WithFields(logrus.Fields{
		"output":                   outputPath,
		"mask_coverage_percentage": fmt.Sprintf("%.2f", mask.CoveragePercentage()),
	}).Info("Composite written")

	return nil
}
