package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, full name and password and creates the
// account. A successful registration also logs the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, username, fullName, password)
	if err != nil {
		return err
	}
	a.setUser(u)
	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Registered and logged in as %s\n", u.Username)
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.setUser(u)
	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Logged in as %s\n", u.Username)
	return nil
}

// Logout drops the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setUser(nil)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	u := a.currentUser()
	fmt.Fprintf(a.out, "%d  %s  %s  (%s)\n", u.ID, u.Username, u.FullName, u.Role)
	return nil
}
