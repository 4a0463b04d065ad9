// Package cli is the terminal presentation layer: a REPL whose command
// set follows the current view, interactive form prompts, and the
// five-second guard around the reminder alarm trigger.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mediminder/mediminder/internal/api"
	"github.com/mediminder/mediminder/internal/config"
	"github.com/mediminder/mediminder/internal/logging"
	"github.com/mediminder/mediminder/internal/session"
	"github.com/mediminder/mediminder/internal/state"
	"github.com/mediminder/mediminder/internal/tone"
)

// alarmGuard is how long the alarm trigger stays disabled after a
// trigger. Fixed, not tied to actual audio completion.
const alarmGuard = 5 * time.Second

type App struct {
	config *config.Config
	ctrl   *state.Controller
	tone   tone.Emitter
	log    logging.Logger
	reader *bufio.Reader

	alarmUntil time.Time
	now        func() time.Time
}

// NewApp wires the session store, API client, controller, and tone
// emitter together.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := session.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	client := api.NewHTTPClient(cfg.BaseURL, cfg.RequestTimeout, log)
	ctrl := state.New(client, store, log)

	a := &App{
		config: cfg,
		ctrl:   ctrl,
		tone:   tone.NewBeeper(log),
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		now:    time.Now,
	}
	ctrl.SetConfirm(a.confirmPrompt)
	return a, nil
}

// Run restores any persisted session and enters the REPL. A restored
// session gets the same dashboard banner an interactive login shows.
func (a *App) Run(ctx context.Context) {
	defer a.ctrl.Close()
	a.ctrl.Bootstrap(ctx)
	if a.ctrl.View() == state.ViewDashboard {
		a.welcome()
	}
	a.Root(ctx)
}

// welcome prints the dashboard banner: greeting, avatar, username, and
// the run's health quote.
func (a *App) welcome() {
	u := a.ctrl.User()
	if u == nil {
		return
	}
	printlnFn(fmt.Sprintf("%s, %s %s", a.ctrl.Greeting(a.now()), a.ctrl.Avatar(), u.Username))
	printlnFn(a.ctrl.Quote())
}

// confirmPrompt asks a y/N question; anything but an explicit yes is a
// refusal.
func (a *App) confirmPrompt(prompt string) bool {
	ans, err := GetSimpleText(a.reader, prompt+" (y/N)", os.Stdout)
	if err != nil {
		return false
	}
	ans = strings.ToLower(ans)
	return ans == "y" || ans == "yes"
}

// alarm triggers the reminder tone unless a previous trigger is still
// inside the guard window.
func (a *App) alarm() {
	if a.now().Before(a.alarmUntil) {
		printlnFn("Reminder is already sounding, hold on...")
		return
	}
	a.alarmUntil = a.now().Add(alarmGuard)
	a.tone.Play()
	printlnFn("Reminder tone playing for 5 seconds.")
}
