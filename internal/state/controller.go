// Package state implements the application state controller: the view
// machine, the in-memory user and medicine list, and the mediation
// between user intents, the API client, and the session store.
package state

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mediminder/mediminder/internal/api"
	"github.com/mediminder/mediminder/internal/export"
	"github.com/mediminder/mediminder/internal/logging"
	"github.com/mediminder/mediminder/internal/models"
	"github.com/mediminder/mediminder/internal/session"
)

// Avatars is the fixed selection of profile avatars, in display order.
// The first one is the default.
var Avatars = []string{
	"👨‍⚕️", "👩‍⚕️", "🧑‍⚕️", "💊", "🏥", "❤️", "🩺", "🧬",
}

var healthQuotes = []string{
	"The greatest wealth is health.",
	"Take care of your body. It's the only place you have to live.",
	"To keep the body in good health is a duty.",
	"Health is a state of complete harmony of the body, mind and spirit.",
	"A healthy outside starts from the inside.",
	"Your health is an investment, not an expense.",
	"Happiness is the highest form of health.",
}

// MedicineForm holds the add/edit form fields as the user types them.
type MedicineForm struct {
	Name      string
	Dosage    string
	Frequency string
	Type      models.MedicineType
}

// Controller owns all mutable application state. It is driven by one
// logical user action at a time (the REPL is single-threaded), so no
// locking is needed; overlapping actions on the same entity are still
// serialized via per-id in-flight markers.
type Controller struct {
	api   api.Client
	store session.Store
	log   logging.Logger

	view      View
	user      *models.User
	medicines []models.Medicine
	editingID string
	form      MedicineForm
	avatar    string
	deleting  map[string]bool
	quote     string
	closed    bool

	// confirm gates destructive actions. The presentation layer installs
	// an interactive prompt; the default refuses everything.
	confirm func(prompt string) bool
}

// New constructs a controller in the login view. Call Bootstrap to
// restore a persisted session.
func New(client api.Client, store session.Store, log logging.Logger) *Controller {
	return &Controller{
		api:      client,
		store:    store,
		log:      log,
		view:     ViewLogin,
		avatar:   Avatars[0],
		deleting: map[string]bool{},
		quote:    healthQuotes[rand.Intn(len(healthQuotes))],
		confirm:  func(string) bool { return false },
		form:     MedicineForm{Type: models.TypeTablet},
	}
}

// SetConfirm installs the confirmation prompt used before deletes.
func (c *Controller) SetConfirm(f func(prompt string) bool) {
	if f != nil {
		c.confirm = f
	}
}

// Close marks the controller torn down; subsequent mutations are no-ops.
// Guards against a late response updating state after shutdown.
func (c *Controller) Close() {
	c.closed = true
}

// --- accessors ---

func (c *Controller) View() View                   { return c.view }
func (c *Controller) User() *models.User           { return c.user }
func (c *Controller) Medicines() []models.Medicine { return c.medicines }
func (c *Controller) EditingID() string            { return c.editingID }
func (c *Controller) Form() MedicineForm           { return c.form }
func (c *Controller) Avatar() string               { return c.avatar }

// Quote returns the health quote picked for this run.
func (c *Controller) Quote() string { return c.quote }

// Greeting returns the hour-appropriate dashboard greeting.
func (c *Controller) Greeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 5:
		return "Good Night"
	case hour < 12:
		return "Good Morning"
	case hour < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// --- navigation ---

func (c *Controller) ShowLogin() {
	c.view = ViewLogin
}

func (c *Controller) ShowRegister() {
	c.view = ViewRegister
}

func (c *Controller) ShowForgotPassword() {
	c.view = ViewForgotPassword
}

func (c *Controller) ShowDashboard() {
	if c.user != nil {
		c.view = ViewDashboard
	}
}

func (c *Controller) ShowProfile() {
	if c.user != nil {
		c.view = ViewProfile
	}
}

// --- session lifecycle ---

// Bootstrap restores a persisted session, if any. On success it enters
// the dashboard and eagerly loads the medicine list; a load failure is
// logged but does not abort the restored session.
func (c *Controller) Bootstrap(ctx context.Context) {
	user, token, ok := c.store.RestoreSession()
	if !ok {
		c.view = ViewLogin
		return
	}
	c.enterSession(ctx, user, token)
	c.log.Info(ctx, "session restored", "user", user.ID)
}

// enterSession is the shared post-auth path for login, registration,
// and session restore.
func (c *Controller) enterSession(ctx context.Context, user models.User, token string) {
	c.user = &user
	c.api.SetToken(token)
	if a := c.store.Avatar(user.ID); a != "" {
		c.avatar = a
	} else {
		c.avatar = Avatars[0]
	}
	c.view = ViewDashboard
	if err := c.LoadMedicines(ctx); err != nil {
		c.log.Error(ctx, "failed to load medicines", "error", err)
	}
}

// Login authenticates and, on success, persists the session and enters
// the dashboard. On failure the error is returned for display and the
// view does not change.
func (c *Controller) Login(ctx context.Context, identifier, password string) error {
	if c.closed {
		return nil
	}
	ar, err := c.api.Login(ctx, strings.TrimSpace(identifier), password)
	if err != nil {
		return err
	}
	if err := c.store.SaveSession(ar.User, ar.Token); err != nil {
		c.log.Error(ctx, "failed to persist session", "error", err)
	}
	c.enterSession(ctx, ar.User, ar.Token)
	return nil
}

// Register creates an account and behaves like Login on success. The
// single contact value is classified as an email when it contains "@",
// as a phone number otherwise; the other field stays unset.
func (c *Controller) Register(ctx context.Context, name, contact, password string) error {
	if c.closed {
		return nil
	}
	var email, phone string
	if contact = strings.TrimSpace(contact); contact != "" {
		if strings.Contains(contact, "@") {
			email = contact
		} else {
			phone = contact
		}
	}
	ar, err := c.api.Register(ctx, strings.TrimSpace(name), password, email, phone)
	if err != nil {
		return err
	}
	if err := c.store.SaveSession(ar.User, ar.Token); err != nil {
		c.log.Error(ctx, "failed to persist session", "error", err)
	}
	c.enterSession(ctx, ar.User, ar.Token)
	return nil
}

// RequestReset asks for a password-reset link. The returned message is
// user-visible and never confirms whether the account exists.
func (c *Controller) RequestReset(ctx context.Context, email string) (string, error) {
	return c.api.RequestPasswordReset(ctx, email)
}

// Logout clears the persisted session and all in-memory user data and
// returns to the login view. Preferences survive.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.store.ClearSession(); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
	}
	c.api.SetToken("")
	c.user = nil
	c.medicines = nil
	c.CancelEdit()
	c.view = ViewLogin
}

// --- medicines ---

// LoadMedicines replaces the in-memory list wholesale.
func (c *Controller) LoadMedicines(ctx context.Context) error {
	meds, err := c.api.ListMedicines(ctx)
	if err != nil {
		return err
	}
	if c.closed {
		return nil
	}
	c.medicines = meds
	return nil
}

// BeginEdit loads a medicine into the form and marks it as the single
// edit target.
func (c *Controller) BeginEdit(med models.Medicine) {
	c.form = MedicineForm{
		Name:      med.Name,
		Dosage:    med.Dosage,
		Frequency: med.Frequency,
		Type:      med.Type,
	}
	if c.form.Type == "" {
		c.form.Type = models.TypeTablet
	}
	c.editingID = med.ID
}

// CancelEdit clears the edit target and the form.
func (c *Controller) CancelEdit() {
	c.form = MedicineForm{Type: models.TypeTablet}
	c.editingID = ""
}

// SaveMedicine creates or updates depending on whether an edit target is
// set. Updates replace the matching entry in place, preserving order.
// Creates append the returned entity. A non-entity response either way
// triggers a full reload instead. The edit target is cleared on success.
func (c *Controller) SaveMedicine(ctx context.Context, form MedicineForm) error {
	if c.closed || c.user == nil {
		return nil
	}
	fields := models.MedicineFields{
		Name:      form.Name,
		Dosage:    form.Dosage,
		Frequency: form.Frequency,
		Type:      models.NormalizeType(string(form.Type)),
		User:      c.user.ID,
	}

	if c.editingID != "" {
		med, err := c.api.UpdateMedicine(ctx, c.editingID, fields)
		if err != nil {
			return err
		}
		if c.closed {
			return nil
		}
		if med == nil {
			if err := c.LoadMedicines(ctx); err != nil {
				return err
			}
		} else {
			for i := range c.medicines {
				if c.medicines[i].ID == c.editingID {
					c.medicines[i] = *med
					break
				}
			}
		}
		c.CancelEdit()
		return nil
	}

	med, err := c.api.AddMedicine(ctx, fields)
	if err != nil {
		return err
	}
	if c.closed {
		return nil
	}
	if med == nil {
		if err := c.LoadMedicines(ctx); err != nil {
			return err
		}
	} else {
		c.medicines = append(c.medicines, *med)
	}
	c.CancelEdit()
	return nil
}

// DeleteMedicine removes a medicine after explicit confirmation.
// Declining leaves the list untouched and issues no network call. A
// second delete for an id already in flight is ignored.
func (c *Controller) DeleteMedicine(ctx context.Context, id string) error {
	if c.closed || c.deleting[id] {
		return nil
	}
	if !c.confirm("Are you sure you want to delete this medicine?") {
		return nil
	}
	c.deleting[id] = true
	defer delete(c.deleting, id)

	if err := c.api.DeleteMedicine(ctx, id); err != nil {
		return err
	}
	if c.closed {
		return nil
	}
	kept := c.medicines[:0]
	for _, m := range c.medicines {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	c.medicines = kept
	if c.editingID == id {
		c.CancelEdit()
	}
	return nil
}

// --- preferences & export ---

// SetAvatar persists the avatar choice for the current user.
func (c *Controller) SetAvatar(avatar string) error {
	if c.user == nil {
		return fmt.Errorf("not logged in")
	}
	if err := c.store.SetAvatar(c.user.ID, avatar); err != nil {
		return err
	}
	c.avatar = avatar
	return nil
}

// ToggleDarkMode flips and persists the global preference, returning
// the new value.
func (c *Controller) ToggleDarkMode() bool {
	on := !c.store.DarkMode()
	if err := c.store.SetDarkMode(on); err != nil {
		c.log.Error(context.Background(), "failed to persist dark mode", "error", err)
	}
	return on
}

func (c *Controller) DarkMode() bool {
	return c.store.DarkMode()
}

// ExportCSV writes the medicine report into dir and returns its path.
func (c *Controller) ExportCSV(dir string) (string, error) {
	return export.WriteReport(dir, c.medicines, time.Now())
}
