package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mediminder/mediminder/internal/models"
	"github.com/mediminder/mediminder/internal/state"
)

func (a *App) list() {
	meds := a.ctrl.Medicines()
	if len(meds) == 0 {
		printlnFn("No medicines yet. Use 'add' to create one.")
		return
	}
	for _, m := range meds {
		printlnFn(fmt.Sprintf("%-24s  %-10s  %-12s  %-16s  id=%s",
			m.Name, m.Type, m.Dosage, m.Frequency, m.ID))
	}
}

// medicineForm runs the add/edit form. With an edit target set the
// current values act as defaults, so Enter keeps a field unchanged.
func (a *App) medicineForm(ctx context.Context) {
	form := a.ctrl.Form()
	editing := a.ctrl.EditingID() != ""

	var err error
	if editing {
		form.Name, err = GetTextDefault(a.reader, "Medicine name", form.Name, os.Stdout)
	} else {
		form.Name, err = getSimpleText(a.reader, "Medicine name", os.Stdout)
	}
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	if strings.TrimSpace(form.Name) == "" {
		printlnFn("Medicine name is required.")
		return
	}

	if editing {
		form.Dosage, err = GetTextDefault(a.reader, "Dosage", form.Dosage, os.Stdout)
	} else {
		form.Dosage, err = getSimpleText(a.reader, "Dosage (e.g. 500mg)", os.Stdout)
	}
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}

	if editing {
		form.Frequency, err = GetTextDefault(a.reader, "Frequency", form.Frequency, os.Stdout)
	} else {
		form.Frequency, err = getSimpleText(a.reader, "Frequency (e.g. twice a day)", os.Stdout)
	}
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}

	typ, err := GetTextDefault(a.reader, a.typePrompt(), string(form.Type), os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	form.Type = models.NormalizeType(typ)

	if err := a.ctrl.SaveMedicine(ctx, form); err != nil {
		printlnFn("Failed to save medicine:", err.Error())
		return
	}
	if editing {
		printlnFn("Medicine updated.")
	} else {
		printlnFn("Medicine added.")
	}
}

func (a *App) typePrompt() string {
	names := make([]string, len(models.MedicineTypes))
	for i, t := range models.MedicineTypes {
		names[i] = string(t)
	}
	return "Type (" + strings.Join(names, ", ") + ")"
}

// edit looks up the target by id (argument or prompt) and runs the form
// with the entry pre-filled.
func (a *App) edit(ctx context.Context, args []string) {
	id, ok := a.resolveID(args, "Enter medicine id to edit")
	if !ok {
		return
	}
	med, found := a.findMedicine(id)
	if !found {
		printlnFn("No medicine with id", id)
		return
	}
	a.ctrl.BeginEdit(med)
	a.medicineForm(ctx)
	// A form abandoned halfway must not leave a stale edit target.
	if a.ctrl.EditingID() != "" {
		a.ctrl.CancelEdit()
	}
}

func (a *App) delete(ctx context.Context, args []string) {
	id, ok := a.resolveID(args, "Enter medicine id to delete")
	if !ok {
		return
	}
	if _, found := a.findMedicine(id); !found {
		printlnFn("No medicine with id", id)
		return
	}
	before := len(a.ctrl.Medicines())
	if err := a.ctrl.DeleteMedicine(ctx, id); err != nil {
		printlnFn("Failed to delete medicine:", err.Error())
		return
	}
	if len(a.ctrl.Medicines()) < before {
		printlnFn("Medicine deleted.")
	}
}

func (a *App) resolveID(args []string, prompt string) (string, bool) {
	if len(args) > 0 {
		return args[0], true
	}
	id, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

func (a *App) findMedicine(id string) (models.Medicine, bool) {
	for _, m := range a.ctrl.Medicines() {
		if m.ID == id {
			return m, true
		}
	}
	return models.Medicine{}, false
}

func (a *App) export() {
	path, err := a.ctrl.ExportCSV(a.config.ExportDir)
	if err != nil {
		printlnFn("Failed to export report:", err.Error())
		return
	}
	printlnFn("Report saved to", path)
}

// avatarForm lets the user pick one of the fixed avatars by number.
func (a *App) avatarForm(ctx context.Context) {
	for i, av := range state.Avatars {
		printlnFn(fmt.Sprintf("%d) %s", i+1, av))
	}
	choice, err := getSimpleText(a.reader, "Pick an avatar (number)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	var n int
	if _, err := fmt.Sscanf(choice, "%d", &n); err != nil || n < 1 || n > len(state.Avatars) {
		printlnFn("Invalid choice.")
		return
	}
	if err := a.ctrl.SetAvatar(state.Avatars[n-1]); err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	printlnFn("Profile updated successfully!")
}
