package drafting

import (
	"fmt"
	"strings"

	"motionforge/internal/domain/models"
	"motionforge/internal/filing"
)

// BuildCaption renders the static caption block that anchors every
// filing: court, parties, case number, and the filing title. Pure
// string formatting, no generation call.
//
// A caption without both parties has no valid anchor, so missing
// plaintiff or defendant aborts the whole run (unlike section
// failures, which are absorbed inline).
func BuildCaption(tmpl *filing.Template, c *models.CaseProfile, answers map[string]string) (string, error) {
	if strings.TrimSpace(c.Plaintiff) == "" || strings.TrimSpace(c.Defendant) == "" {
		return "", fmt.Errorf("case %s: caption requires plaintiff and defendant", c.ID)
	}

	var sb strings.Builder
	if court := strings.TrimSpace(c.CourtName); court != "" {
		sb.WriteString(strings.ToUpper(court))
		sb.WriteString("\n\n")
	}
	sb.WriteString(c.Plaintiff)
	sb.WriteString(", Plaintiff,\n")
	sb.WriteString("v.\n")
	sb.WriteString(c.Defendant)
	sb.WriteString(", Defendant.\n\n")
	if number := strings.TrimSpace(c.CaseNumber); number != "" {
		sb.WriteString("CASE NO: ")
		sb.WriteString(number)
		sb.WriteString("\n\n")
	}
	sb.WriteString(strings.ToUpper(FilingTitle(tmpl, answers)))

	return sb.String(), nil
}

// FilingTitle names the filing: custom motions are titled by the
// user's motion_title answer, everything else by the template name.
func FilingTitle(tmpl *filing.Template, answers map[string]string) string {
	if tmpl.ID == filing.TypeCustomMotion {
		if title := strings.TrimSpace(answers[filing.MotionTitleQuestion]); title != "" {
			return title
		}
		return "MOTION"
	}
	return tmpl.Name
}
