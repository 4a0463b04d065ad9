package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mediminder/mediminder/internal/state"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

func (a *App) getStatus() string {
	s := ""
	if u := a.ctrl.User(); u != nil {
		s = u.Username + " "
	}
	s += a.ctrl.View().String()
	if a.ctrl.DarkMode() {
		s += " 🌙"
	}
	return "(" + s + ")"
}

// Root runs the read–eval–print loop. The accepted commands depend on
// the controller's current view; unknown commands are reported back.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and swallowed here;
// nothing a handler does is fatal to the loop.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to MediMinder CLI (type 'help' for commands)")

	for {
		fmt.Printf("med %s> ", a.getStatus())

		line, err := a.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if errors.Is(err, io.EOF) {
				return
			}
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			a.help()
		default:
			a.dispatch(ctx, cmd, parts[1:])
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func (a *App) help() {
	switch a.ctrl.View() {
	case state.ViewDashboard:
		printlnFn("Available commands: (l)ist, add, edit, delete, export, alarm, dark, profile, logout, exit")
	case state.ViewProfile:
		printlnFn("Available commands: avatar, dark, back, exit")
	default:
		printlnFn("Available commands: login, register, forgot, exit")
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) {
	switch a.ctrl.View() {
	case state.ViewLogin, state.ViewRegister, state.ViewForgotPassword:
		switch cmd {
		case "login":
			a.ctrl.ShowLogin()
			a.loginForm(ctx)
		case "register":
			a.ctrl.ShowRegister()
			a.registerForm(ctx)
		case "forgot":
			a.ctrl.ShowForgotPassword()
			a.forgotForm(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}

	case state.ViewDashboard:
		switch cmd {
		case "l", "list":
			a.list()
		case "add":
			a.ctrl.CancelEdit()
			a.medicineForm(ctx)
		case "edit":
			a.edit(ctx, args)
		case "delete":
			a.delete(ctx, args)
		case "export":
			a.export()
		case "alarm":
			a.alarm()
		case "dark":
			a.toggleDark()
		case "profile":
			a.ctrl.ShowProfile()
		case "logout":
			a.ctrl.Logout(ctx)
			printlnFn("Logged out.")
		default:
			printlnFn("Unknown command:", cmd)
		}

	case state.ViewProfile:
		switch cmd {
		case "avatar":
			a.avatarForm(ctx)
		case "dark":
			a.toggleDark()
		case "back":
			a.ctrl.ShowDashboard()
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) toggleDark() {
	if a.ctrl.ToggleDarkMode() {
		printlnFn("Dark mode on.")
	} else {
		printlnFn("Dark mode off.")
	}
}
