package cli

import (
	"context"
	"fmt"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register asks for email, username and password (twice), validates them and
// creates the account. A successful registration logs the user in.
func (a *App) Register(ctx context.Context) error {
	var f registerForm
	var err error

	if f.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if f.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if f.Confirm, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}
	if err := checkForm(f); err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, f.Email, f.Password, f.Username)
	if err != nil {
		return err
	}

	a.resetView()
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Username)
	return nil
}

// Login asks for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	var f loginForm
	var err error

	if f.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if err := checkForm(f); err != nil {
		return err
	}

	u, err := a.authService.Login(ctx, f.Email, f.Password)
	if err != nil {
		return err
	}

	a.resetView()
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.resetView()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.authService.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.Username, u.Email)
	return nil
}

// Profile shows the stored account and lets the user change it. Blank
// answers keep the current email and username; a blank password keeps the
// current password.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.authService.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Email:        %s\n", u.Email)
	fmt.Fprintf(a.out, "Username:     %s\n", u.Username)
	fmt.Fprintf(a.out, "Member since: %s\n", u.CreatedAt.Local().Format("2006-01-02"))

	if !confirm(a.reader, "Edit profile?", a.out) {
		return nil
	}

	f := profileForm{Email: u.Email, Username: u.Username}
	email, err := getSimpleText(a.reader, "New email (blank to keep)", a.out)
	if err != nil {
		return err
	}
	if email != "" {
		f.Email = email
	}
	username, err := getSimpleText(a.reader, "New username (blank to keep)", a.out)
	if err != nil {
		return err
	}
	if username != "" {
		f.Username = username
	}
	if f.Password, err = getPassword(a.reader, "New password (blank to keep)", a.out); err != nil {
		return err
	}
	if err := checkForm(f); err != nil {
		return err
	}

	if _, err := a.authService.UpdateProfile(ctx, f.Email, f.Password, f.Username); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated successfully")
	return nil
}
