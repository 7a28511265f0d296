package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vertti/pmlaunch/pkg/childenv"
	"github.com/vertti/pmlaunch/pkg/entrypoint"
	"github.com/vertti/pmlaunch/pkg/launch"
	"github.com/vertti/pmlaunch/pkg/manager"
	"github.com/vertti/pmlaunch/pkg/output"
	"github.com/vertti/pmlaunch/pkg/status"
)

var (
	pmFlag           string
	debugFlag        bool
	cleanInstallFlag bool
)

func init() {
	rootCmd.Flags().StringVarP(&pmFlag, "pm", "p", "", "package manager to launch (npm, yarn, pnpm)")
	rootCmd.Flags().BoolVarP(&debugFlag, "debug", "d", false, "verbose child arguments and stdout relay")
	rootCmd.Flags().BoolVar(&cleanInstallFlag, "clean-install", false, "omit private-registry configuration (public defaults)")
}

func runLaunch(_ *cobra.Command, args []string) error {
	req, err := buildRequest(args)
	if err != nil {
		return err
	}

	logger := newLogger(req.Debug)
	planner, err := newPlanner(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pmlaunch: %v\n", err)
		os.Exit(launch.FailureCode)
	}

	plan, redactor, steps, err := planner.Build(req)
	reportPlanning(os.Stdout, os.Stderr, steps, err != nil, req.Debug)
	if err != nil {
		os.Exit(launch.FailureCode)
	}
	logger.Debug("spawning", "command", plan.String())

	supervisor := &launch.Supervisor{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		RelayStdout: req.Debug,
		Redactor:    redactor,
	}
	outcome, err := supervisor.Run(plan)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pmlaunch: %v\n", err)
		os.Exit(launch.FailureCode)
	}
	if outcome.Signal != "" {
		fmt.Fprintf(os.Stderr, "pmlaunch: install terminated by signal: %s\n", outcome.Signal)
	}
	os.Exit(outcome.Status())
	return nil
}

// reportPlanning writes planning results to the process streams: passing
// steps go to stdout (debug mode only), and a failure always goes to stderr
// so CI captures the reason even when stdout is discarded.
func reportPlanning(stdout, stderr io.Writer, steps []status.Result, failed, debug bool) {
	if debug {
		for _, s := range steps {
			if s.OK() {
				output.FprintResult(stdout, s)
			}
		}
	}
	if failed && len(steps) > 0 {
		output.FprintResult(stderr, steps[len(steps)-1])
	}
}

// buildRequest folds the positional manager name and the --pm flag into one
// immutable request. Giving both only works when they agree.
func buildRequest(args []string) (launch.Request, error) {
	name := pmFlag
	if len(args) == 1 {
		if pmFlag != "" && !strings.EqualFold(pmFlag, args[0]) {
			return launch.Request{}, fmt.Errorf("conflicting manager names: positional %q vs --pm %q", args[0], pmFlag)
		}
		name = args[0]
	}
	return launch.Request{
		Manager:      name,
		Debug:        debugFlag,
		CleanInstall: cleanInstallFlag,
	}, nil
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "pmlaunch"})
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// newPlanner wires the planner over the real system: process environment,
// filesystem, PATH lookup, working directory and launcher location.
func newPlanner(logger *log.Logger) (*launch.Planner, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	executable, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate launcher executable: %w", err)
	}

	return &launch.Planner{
		Detector: &manager.Detector{
			Env:   &manager.RealEnvGetter{},
			Files: &manager.RealFileReader{},
		},
		Resolver: &entrypoint.Resolver{
			Env:     &manager.RealEnvGetter{},
			Stat:    &entrypoint.RealFileStater{},
			Look:    &entrypoint.RealLookPather{},
			Dirs:    &entrypoint.RealDirReader{},
			WorkDir: workDir,
			GOOS:    runtime.GOOS,
			Log:     logger,
		},
		Composer: &childenv.Composer{
			Config:      childenv.DefaultConfig(),
			Source:      &childenv.RealEnvSource{},
			Stat:        &childenv.RealFileStater{},
			LauncherDir: filepath.Dir(executable),
			GOOS:        runtime.GOOS,
			GOARCH:      runtime.GOARCH,
		},
		Opener: &childenv.RealFileOpener{},
		Log:    logger,
	}, nil
}
