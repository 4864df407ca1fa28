//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/signal"

	"walkclock/app"
	"walkclock/framebuf"
	"walkclock/hal"
	"walkclock/internal/config"
)

func main() {
	var hcfg hal.HeadlessConfig
	var configPath, url, imagePath string
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", app.TickHz, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "walkclock.yaml", "Configuration file path.")
	flag.StringVar(&url, "url", "", "QR code URL (overrides config).")
	flag.StringVar(&imagePath, "image", "", "Image mode picture (overrides config).")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if url != "" {
		cfg.URL = url
	}
	if imagePath != "" {
		cfg.Image = imagePath
	}

	// The HAL constructor runs inside the platform runner; pass the
	// storage path and LCD choice through the environment it reads.
	os.Setenv("WALKCLOCK_BACKUP_PATH", cfg.BackupPath)
	if cfg.SPILCD {
		os.Setenv("WALKCLOCK_SPI_LCD", "1")
	}

	acfg := app.Config{URL: cfg.URL}
	if cfg.Image != "" {
		frame, err := loadImage(cfg.Image)
		if err != nil {
			fmt.Fprintln(os.Stderr, "image:", err)
			os.Exit(1)
		}
		acfg.Image = frame
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, acfg)
	}

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadImage decodes a picture and centres it on the panel, cropping
// anything larger than 64x64.
func loadImage(path string) (*framebuf.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	frame := &framebuf.Frame{}
	b := img.Bounds()
	offX := (framebuf.Width - b.Dx()) / 2
	offY := (framebuf.Height - b.Dy()) / 2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			frame.Set(x-b.Min.X+offX, y-b.Min.Y+offY,
				uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
	return frame, nil
}
