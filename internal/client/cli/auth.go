package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bizdesk/internal/client/models"
)

var (
	errNotLoggedIn = errors.New("not logged in, use 'login' first")
	errFailed      = errors.New("request failed, see log for details")
)

// getSimpleText, getWithDefault and getPassword are indirections used to
// facilitate testing.
var (
	getSimpleText  = GetSimpleText
	getWithDefault = GetWithDefault
	getPassword    = GetPassword
)

func (a *App) Register(ctx context.Context) error {
	var req models.RegisterRequest
	var err error

	if req.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if req.Company, err = getSimpleText(a.reader, "Enter company", a.out); err != nil {
		return err
	}
	if req.Industry, err = getSimpleText(a.reader, "Enter industry (optional)", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.Password, err = getPassword(a.reader, a.out); err != nil {
		return err
	}

	if !a.core.Auth.Register(ctx, req) {
		return errFailed
	}
	a.println("Account created, you can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if !a.core.Auth.Login(ctx, email, password) {
		return errors.New("login failed")
	}
	if err := a.core.Auth.GetCurrentUser(ctx); err != nil {
		a.log.Warn(ctx, "profile not loaded", "err", err)
	}

	a.println("Login successful")
	a.printWelcome()
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.core.Auth.Logout(ctx)
	a.println("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if err := a.core.Auth.GetCurrentUser(ctx); err != nil {
		return err
	}
	p, ok := a.core.Session.Profile()
	if !ok {
		return errNotLoggedIn
	}

	fmt.Fprintf(a.out, "ID:       %d\n", p.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", p.Name)
	fmt.Fprintf(a.out, "Company:  %s\n", p.Company)
	fmt.Fprintf(a.out, "Industry: %s\n", p.Industry)
	fmt.Fprintf(a.out, "Email:    %s\n", p.Email)
	return nil
}

// EditProfile prompts for each editable field, keeping the current value on
// an empty answer.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if err := a.core.Auth.GetCurrentUser(ctx); err != nil {
		return err
	}
	cur, _ := a.core.Session.Profile()

	var (
		upd models.ProfileUpdate
		err error
	)
	if upd.Name, err = getWithDefault(a.reader, "Name", cur.Name, a.out); err != nil {
		return err
	}
	if upd.Company, err = getWithDefault(a.reader, "Company", cur.Company, a.out); err != nil {
		return err
	}
	if upd.Industry, err = getWithDefault(a.reader, "Industry", cur.Industry, a.out); err != nil {
		return err
	}

	if !a.core.Auth.UpdateProfile(ctx, upd) {
		return errFailed
	}
	a.println("Profile updated")
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	answer, err := getSimpleText(a.reader, "Type 'yes' to delete your account and all its data", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		a.println("Cancelled")
		return nil
	}

	if !a.core.Auth.DeleteAccount(ctx) {
		return errFailed
	}
	a.println("Account deleted")
	return nil
}
