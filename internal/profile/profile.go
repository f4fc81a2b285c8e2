// Package profile loads static interview context for prompt building
package profile

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Profile is the static session context: who is interviewing, for what
// role, and what the candidate has prepared. Immutable once loaded.
type Profile struct {
	Company           string
	Position          string
	Date              string
	SelfIntro         string
	CompanyBackground string
}

// Load reads the candidate self-introduction and optional company
// background from dir. Missing files are fine; the profile is best-effort.
func Load(dir, company, position, date string) *Profile {
	p := &Profile{Company: company, Position: position, Date: date}

	if intro, err := os.ReadFile(filepath.Join(dir, "self_intro.txt")); err == nil {
		p.SelfIntro = strings.TrimSpace(string(intro))
	} else if !os.IsNotExist(err) {
		slog.Warn("failed to read self intro", "error", err)
	}

	if company != "" {
		path := filepath.Join(dir, "company_"+Slug(company)+".txt")
		if background, err := os.ReadFile(path); err == nil {
			p.CompanyBackground = strings.TrimSpace(string(background))
		} else if !os.IsNotExist(err) {
			slog.Warn("failed to read company background", "error", err)
		}
	}

	return p
}

// Slug normalizes a company name into its background-file identifier.
func Slug(company string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(company)), " ", "_")
}
