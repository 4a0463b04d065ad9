package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// loginForm prompts for credentials and attempts to sign in. On failure
// the error message is shown and the view stays where it is; the user
// may simply retry.
func (a *App) loginForm(ctx context.Context) {
	identifier, err := getSimpleText(a.reader, "Email or Phone", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}

	if err := a.ctrl.Login(ctx, identifier, password); err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	a.welcome()
}

// registerForm prompts for the registration fields. A single contact
// value stands in for email-or-phone; the controller decides which.
func (a *App) registerForm(ctx context.Context) {
	name, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	contact, err := getSimpleText(a.reader, "Email or Phone (optional)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}

	if err := a.ctrl.Register(ctx, name, contact, password); err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	printlnFn("Welcome to MediMinder,", a.ctrl.User().Username)
}

// forgotForm requests a password-reset link. Success and failure both
// produce a message; success never confirms the account exists.
func (a *App) forgotForm(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}

	msg, err := a.ctrl.RequestReset(ctx, email)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	printlnFn(msg)
	a.ctrl.ShowLogin()
}
