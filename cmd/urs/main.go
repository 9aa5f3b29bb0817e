package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/urs/internal/cmd"
	"github.com/jimezsa/urs/internal/config"
	"github.com/jimezsa/urs/internal/logging"
	"github.com/jimezsa/urs/internal/ui"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	configDir, err := config.ConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Flags are not parsed yet; URS_COLOR decides until they are.
	userInterface := ui.New(os.Stdout, os.Stderr, ui.NormalizeColorMode(os.Getenv("URS_COLOR")), false)
	log, err := logging.Setup(cfg.ScrapesDir, userInterface)
	if err != nil {
		userInterface.Errorf("%v", err)
		return 1
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	versionString := buildVersion()
	err = log.Main(func() error {
		cli := cmd.NewCLI()
		var kctx *kong.Context
		err := log.Args(func() error {
			var err error
			kctx, err = cmd.Parse(cli, args, os.Stdout, os.Stderr, kong.Vars{"version": versionString})
			return err
		})
		if err != nil {
			return err
		}

		colorMode := ui.NormalizeColorMode(cli.Color)
		userInterface.SetColorMode(colorMode, false)

		level := zerolog.InfoLevel
		if cli.Verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)

		return kctx.Run(&cmd.Context{
			Ctx:       ctx,
			In:        os.Stdin,
			Out:       os.Stdout,
			Err:       os.Stderr,
			UI:        userInterface,
			Log:       log,
			Config:    cfg,
			ConfigDir: configDir,
			Verbose:   cli.Verbose,
			CSV:       cli.CSV,
			Proxies:   cli.Proxies,
			Version:   versionString,
			ColorMode: colorMode,
		})
	})
	if err != nil {
		userInterface.Errorf("%v", err)
		return 1
	}
	return 0
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}
