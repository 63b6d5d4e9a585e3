package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/radiologix/internal/client/services"
	"github.com/dmitrijs2005/radiologix/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account.
// It does not log the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, name, email, string(password)); err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return err
	}

	fmt.Fprintln(a.out, services.MsgRegistered)
	return nil
}

// Login prompts for credentials and authenticates. A failed attempt leaves
// any existing session untouched.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return err
	}

	if u := a.session.Snapshot().User; u != nil {
		fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "logout", "error", err)
		fmt.Fprintln(a.out, "Logged out, but the stored session could not be removed")
		return err
	}
	_ = a.upload.Reset()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI re-reads the identity from the server.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	if err := a.session.Refresh(ctx); err != nil {
		if errors.Is(err, services.ErrNotAuthenticated) {
			fmt.Fprintln(a.out, services.MsgSessionExpired)
		} else {
			fmt.Fprintln(a.out, services.UserMessage(err))
		}
		return err
	}

	snap := a.session.Snapshot()
	if snap.User == nil {
		return services.ErrNotAuthenticated
	}
	fmt.Fprintf(a.out, "%s <%s>\n", snap.User.Name, snap.User.Email)
	if !snap.User.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "Member since %s\n", snap.User.CreatedAt.Format("2006-01-02"))
	}
	if !snap.TokenExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Session expires %s\n", snap.TokenExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// requireLogin waits for a pending restore and fails if nobody is signed in.
func (a *App) requireLogin(ctx context.Context) error {
	if err := a.session.WaitReady(ctx); err != nil {
		return err
	}
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Please login first")
		return services.ErrNotAuthenticated
	}
	return nil
}
