// Package export writes the medicine list as a CSV report file.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mediminder/mediminder/internal/models"
)

const header = "Medicine Name,Type,Dosage,Frequency"

// WriteReport writes one row per medicine into
// <dir>/mediminder_monthly_report_<YYYY-MM-DD>.csv and returns the full
// path. Every field is double-quoted unconditionally, with embedded
// quotes doubled; a missing type exports as Tablet.
func WriteReport(dir string, meds []models.Medicine, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("mediminder_monthly_report_%s.csv", now.Format("2006-01-02")))

	var b strings.Builder
	b.WriteString(header + "\n")
	for _, m := range meds {
		typ := m.Type
		if typ == "" {
			typ = models.TypeTablet
		}
		fmt.Fprintf(&b, "%s,%s,%s,%s\n",
			quote(m.Name), quote(string(typ)), quote(m.Dosage), quote(m.Frequency))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
