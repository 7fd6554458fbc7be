package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/invokta/onboarding/internal/adapters/googleauth"
	"github.com/invokta/onboarding/internal/domain/session"
)

func runLogin(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (required)")
	stash := fs.String("return-to", "", "path to return to after login")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("login requires -email and -password")
	}

	if *stash != "" {
		if err := ctx.Sessions.StashPreAuthPath(ctx.Ctx, *stash); err != nil {
			return fmt.Errorf("stash return path: %w", err)
		}
	}

	if err := ctx.Sessions.Initialize(ctx.Ctx); err != nil {
		ctx.Logger.WarnContext(ctx.Ctx, "initialize before login", "error", err)
	}
	if err := ctx.Sessions.Login(ctx.Ctx, *email, *password); err != nil {
		return err
	}
	return printSession(ctx)
}

func runRegister(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	firstName := fs.String("first-name", "", "first name (required)")
	lastName := fs.String("last-name", "", "last name")
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *firstName == "" || *email == "" || *password == "" {
		return errors.New("register requires -first-name, -email and -password")
	}

	err := ctx.Sessions.Register(ctx.Ctx, session.RegistrationRequest{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
	})
	if err != nil {
		return err
	}
	return printSession(ctx)
}

func runGoogleURL(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("google-url", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !ctx.Config.Auth.Google.Enabled() {
		return errors.New("google oauth is not configured; set GOOGLE_OAUTH_CLIENT_ID and GOOGLE_OAUTH_CLIENT_SECRET")
	}
	provider, err := googleProvider(ctx)
	if err != nil {
		return err
	}

	authURL, state, err := provider.Begin(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("begin google flow: %w", err)
	}
	if err := writef(os.Stdout, "state: %s\n%s\n", state, authURL); err != nil {
		return err
	}
	return nil
}

func runGoogleCallback(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("google-callback", flag.ContinueOnError)
	query := fs.String("query", "", "redirect query string carrying the authResponse parameter")
	payload := fs.String("payload", "", "URL-encoded auth payload (alternative to -query)")
	code := fs.String("code", "", "authorization code for the direct flow")
	state := fs.String("state", "", "state echoed by the direct flow")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw := *payload
	switch {
	case *code != "":
		if !ctx.Config.Auth.Google.Enabled() {
			return errors.New("google oauth is not configured")
		}
		provider, err := googleProvider(ctx)
		if err != nil {
			return err
		}
		raw, err = provider.Exchange(ctx.Ctx, *code, *state)
		if err != nil {
			return fmt.Errorf("exchange authorization code: %w", err)
		}
	case *query != "":
		claims, err := googleauth.CompleteCallback(ctx.Ctx, ctx.Sessions, ctx.Navigator, *query)
		if err != nil {
			return err
		}
		return writef(os.Stdout, "authenticated as %s <%s>\n", claims.Name, claims.Email)
	case raw == "":
		return errors.New("google-callback requires one of -query, -payload or -code")
	}

	claims, err := ctx.Sessions.LoginWithGoogle(ctx.Ctx, raw)
	if err != nil {
		return err
	}
	if err := writef(os.Stdout, "authenticated as %s <%s>\n", claims.Name, claims.Email); err != nil {
		return err
	}
	return nil
}

func runRefresh(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("refresh", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := ctx.Sessions.Refresh(ctx.Ctx)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "access token refreshed (%d bytes)\n", len(token))
}

func runLogout(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ctx.Sessions.Logout(ctx.Ctx)
}

func runStatus(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := ctx.Sessions.Initialize(ctx.Ctx); err != nil {
		ctx.Logger.WarnContext(ctx.Ctx, "initialize", "error", err)
	}
	return printSession(ctx)
}

func printSession(ctx *commandContext) error {
	if err := writef(os.Stdout, "state: %s\n", ctx.Sessions.State()); err != nil {
		return err
	}
	claims, ok := ctx.Sessions.Claims()
	if !ok {
		return nil
	}
	if err := writef(os.Stdout, "user: %s <%s>\n", claims.Name, claims.Email); err != nil {
		return err
	}
	if err := writef(os.Stdout, "expires: %s\n", claims.Expiry().Format(time.RFC3339)); err != nil {
		return err
	}
	for _, b := range claims.Businesses {
		if err := writef(os.Stdout, "business: %s (%s)\n", b.Name, b.ID); err != nil {
			return err
		}
	}
	return nil
}

func googleProvider(ctx *commandContext) (*googleauth.Provider, error) {
	provider, err := googleauth.NewProvider(ctx.Ctx, googleauth.ProviderConfig{
		ClientID:     ctx.Config.Auth.Google.ClientID,
		ClientSecret: ctx.Config.Auth.Google.ClientSecret,
		RedirectURL:  ctx.Config.Auth.Google.RedirectURL,
		Scope:        ctx.Config.Auth.Google.Scope,
		Issuer:       ctx.Config.Auth.Google.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("build google provider: %w", err)
	}
	return provider, nil
}
