package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/invokta/onboarding/config"
	"github.com/invokta/onboarding/internal/bootstrap"
	"github.com/invokta/onboarding/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx       context.Context
	Logger    *slog.Logger
	Config    config.AppConfig
	Sessions  *service.SessionManager
	Business  *service.BusinessService
	Navigator *routeRecorder
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx := context.Background()

	store, closeStore, err := bootstrap.BuildCredentialStore(ctx, cfg.Store)
	if err != nil {
		logger.ErrorContext(ctx, "build credential store", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal store initialization failure to callers
	}
	defer func() {
		if closeStore == nil {
			return
		}
		if cerr := closeStore(); cerr != nil {
			logger.ErrorContext(ctx, "close credential store failed", "error", cerr)
		}
	}()

	navigator := &routeRecorder{out: os.Stdout}

	sessions, err := bootstrap.BuildSessionManager(bootstrap.SessionDeps{
		Config:    cfg,
		Store:     store,
		Navigator: navigator,
		Logger:    logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "build session manager", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal wiring failure to callers
	}

	businessSvc, err := bootstrap.BuildBusinessService(bootstrap.BusinessDeps{
		Config:    cfg,
		Store:     store,
		Navigator: navigator,
		Logger:    logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "build business service", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal wiring failure to callers
	}

	cmdCtx := &commandContext{
		Ctx:       ctx,
		Logger:    logger,
		Config:    cfg,
		Sessions:  sessions,
		Business:  businessSvc,
		Navigator: navigator,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		if msg := sessions.LastError(); msg != "" {
			_ = writef(os.Stderr, "%s\n", msg)
		}
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate with email and password",
			run:         runLogin,
		},
		"register": {
			name:        "register",
			description: "Create an account and start a session",
			run:         runRegister,
		},
		"google-url": {
			name:        "google-url",
			description: "Print the Google consent URL for the direct OAuth flow",
			run:         runGoogleURL,
		},
		"google-callback": {
			name:        "google-callback",
			description: "Complete a Google login from a redirect query or payload",
			run:         runGoogleCallback,
		},
		"refresh": {
			name:        "refresh",
			description: "Exchange the stored refresh token for a new access token",
			run:         runRefresh,
		},
		"logout": {
			name:        "logout",
			description: "Clear stored credentials and end the session",
			run:         runLogout,
		},
		"status": {
			name:        "status",
			description: "Show the current session state and claims",
			run:         runStatus,
		},
		"business-add": {
			name:        "business-add",
			description: "Submit business details for onboarding",
			run:         runBusinessAdd,
		},
		"pincode": {
			name:        "pincode",
			description: "Resolve a postal code to city/state/country",
			run:         runPincode,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: onboarding <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-18s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
