package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	apiserver "psiprobe-v0/internal/api"
	configapp "psiprobe-v0/internal/config/application"
	"psiprobe-v0/internal/infrastructure/logger"
	pressureapp "psiprobe-v0/internal/pressure/application"
	"psiprobe-v0/internal/pressure/domain"
	pressureinfra "psiprobe-v0/internal/pressure/infrastructure"
	"psiprobe-v0/internal/report"
)

const exitUnknown = 3

// overrideFlagNames pairs each CLI flag with its override field, in the
// order the flags are listed in help output
var overrideFlagNames = []string{
	"some-avg10", "some-avg60", "some-avg300",
	"full-avg10", "full-avg60", "full-avg300",
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		// non-ExitCoder errors (flag parse failures etc.) surface here;
		// anything that stops the probe from answering is UNKNOWN
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUnknown)
	}
}

func newApp() *cli.App {
	var (
		runtimeCfg *configapp.RuntimeConfig
		appLogger  *logger.Logger
	)

	app := &cli.App{
		Name:  "psiprobe",
		Usage: "check kernel pressure stall information against thresholds",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "pressure-root",
				Usage: "pressure source directory (default /proc/pressure)",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "load environment variables from `FILE` (default .env)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: DEBUG, INFO, WARN, ERROR",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format: text or json",
			},
			&cli.StringFlag{
				Name:  "log-output",
				Usage: "log output: stdout, stderr or file path",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "listen port for serve mode",
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "API key for serve mode",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "development mode: no API key required in serve mode",
			},
		},
		Before: func(c *cli.Context) error {
			bootLogger := logger.NewLogger()
			configapp.LoadEnvFile(bootLogger, c.String("env-file"))

			runtimeCfg = configapp.LoadRuntimeConfig(
				c.String("pressure-root"),
				c.String("api-key"),
				c.String("port"),
				c.String("log-level"),
				c.String("log-format"),
				c.String("log-output"),
				c.Bool("dev"),
			)
			appLogger = logger.NewLoggerWith(runtimeCfg.LogLevel, runtimeCfg.LogFormat, runtimeCfg.LogOutput)
			logger.SetDefaultLogger(appLogger)
			return nil
		},
	}

	// a resource class is required; bare invocation is a usage error
	app.Action = func(c *cli.Context) error {
		if err := cli.ShowAppHelp(c); err != nil {
			appLogger.Warn("Failed to print help", "err", err)
		}
		return cli.Exit("missing resource class (cpu, io or memory)", exitUnknown)
	}

	app.Commands = []*cli.Command{
		checkCommand(domain.ClassCPU, "check CPU pressure", &runtimeCfg, &appLogger),
		checkCommand(domain.ClassIO, "check I/O pressure", &runtimeCfg, &appLogger),
		checkCommand(domain.ClassMemory, "check memory pressure", &runtimeCfg, &appLogger),
		serveCommand(&runtimeCfg, &appLogger),
	}

	return app
}

// checkCommand builds one resource-class subcommand with the six
// threshold override flags
func checkCommand(class domain.ResourceClass, usage string, runtimeCfg **configapp.RuntimeConfig, appLogger **logger.Logger) *cli.Command {
	flags := make([]cli.Flag, 0, len(overrideFlagNames))
	for _, name := range overrideFlagNames {
		flags = append(flags, &cli.StringFlag{
			Name:  name,
			Usage: fmt.Sprintf("override `WARN:CRIT` thresholds for the %s metric", name),
		})
	}

	return &cli.Command{
		Name:  string(class),
		Usage: usage,
		Flags: flags,
		Action: func(c *cli.Context) error {
			overrides, err := overridesFromFlags(c)
			if err != nil {
				// configuration error: reported before the source is read
				fmt.Println(report.RenderError(class, err))
				return cli.Exit("", exitUnknown)
			}

			reader := pressureinfra.NewProcReader((*runtimeCfg).PressureRoot)
			service := pressureapp.NewService(*appLogger, reader)

			result, err := service.Check(c.Context, class, overrides)
			if err != nil {
				fmt.Println(report.RenderError(class, err))
				return cli.Exit("", exitUnknown)
			}

			fmt.Println(report.Render(result))
			if code := report.ExitCode(result.Overall); code != 0 {
				return cli.Exit("", code)
			}
			return nil
		},
	}
}

// overridesFromFlags parses the WARN:CRIT override flags that were set
func overridesFromFlags(c *cli.Context) (domain.Overrides, error) {
	var overrides domain.Overrides

	targets := map[string]**domain.Threshold{
		"some-avg10":  &overrides.SomeAvg10,
		"some-avg60":  &overrides.SomeAvg60,
		"some-avg300": &overrides.SomeAvg300,
		"full-avg10":  &overrides.FullAvg10,
		"full-avg60":  &overrides.FullAvg60,
		"full-avg300": &overrides.FullAvg300,
	}

	for _, name := range overrideFlagNames {
		if !c.IsSet(name) {
			continue
		}

		threshold, err := domain.ParseThreshold(c.String(name))
		if err != nil {
			return domain.Overrides{}, fmt.Errorf("invalid --%s: %w", name, err)
		}
		*targets[name] = &threshold
	}

	return overrides, nil
}

// serveCommand runs the check as an HTTP endpoint. Each request is an
// independent snapshot; nothing is persisted between requests.
func serveCommand(runtimeCfg **configapp.RuntimeConfig, appLogger **logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "expose pressure checks over HTTP",
		Action: func(c *cli.Context) error {
			cfg := *runtimeCfg
			log := *appLogger

			reader := pressureinfra.NewProcReader(cfg.PressureRoot)
			checkService := pressureapp.NewService(log, reader)

			server, err := apiserver.NewServer(log, cfg, checkService)
			if err != nil {
				log.Error("Failed to create API server", "err", err)
				return cli.Exit(err.Error(), exitUnknown)
			}

			sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			serverErrChan := make(chan error, 1)
			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					serverErrChan <- err
				}
			}()

			log.Info("psiprobe serving", "port", cfg.APIPort, "dev_mode", cfg.DevMode)

			select {
			case <-sigCtx.Done():
				log.Info("Shutdown signal received, starting graceful shutdown")
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return cli.Exit(err.Error(), exitUnknown)
				}
				log.Info("Graceful shutdown completed")
				return nil
			case err := <-serverErrChan:
				log.Error("Server error received", "err", err)
				return cli.Exit(err.Error(), exitUnknown)
			}
		},
	}
}
