package app

import (
	"context"
	"fmt"
	"os"

	"github.com/kaspanet/minichain/infrastructure/config"
	"github.com/kaspanet/minichain/infrastructure/logger"
	"github.com/kaspanet/minichain/infrastructure/os/signal"
	"github.com/kaspanet/minichain/util/panics"
	"github.com/kaspanet/minichain/util/profiling"
	"github.com/kaspanet/minichain/version"
	"golang.org/x/term"
)

type minichainApp struct {
	cfg *config.Config
}

// StartApp starts minichain and blocks until it exits.
func StartApp() error {
	// Load configuration and parse command line. This function also
	// initializes logging and configures it accordingly.
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer logger.BackendLog.Close()
	defer panics.HandlePanic(log, nil)

	app := &minichainApp{cfg: cfg}
	return app.main()
}

func (app *minichainApp) main() error {
	// Show version at startup.
	log.Infof("Version %s", version.Version())

	// Enable http profiling server if requested.
	if app.cfg.Profile != "" {
		profiling.Start(app.cfg.Profile, log)
	}

	interrupt := signal.InterruptListener()

	showPrompt := term.IsTerminal(int(os.Stdin.Fd()))
	componentManager, err := NewComponentManager(app.cfg, os.Stdin, os.Stdout, showPrompt)
	if err != nil {
		log.Errorf("Error creating the component manager: %+v", err)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	spawn(func() {
		select {
		case <-interrupt:
			cancel()
		case <-ctx.Done():
		}
	})

	runErr := componentManager.Run(ctx)
	if runErr != nil {
		log.Errorf("%+v", runErr)
	}

	stopErr := componentManager.Stop()
	if runErr != nil {
		return runErr
	}
	return stopErr
}
