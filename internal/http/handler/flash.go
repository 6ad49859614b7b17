package handler

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"reviewdesk/internal/model"
	"reviewdesk/internal/service"
)

const flashCookie = "reviewdesk_notice"

// flash carries an action's outcome across the redirect back to the console.
type flash struct {
	Level   service.Level `json:"l"`
	Text    string        `json:"t"`
	OpenURL string        `json:"o,omitempty"`
}

// afterAction sends the browser back to the console with the outcome pending,
// so reloading the page does not repeat the action.
func afterAction(c *fiber.Ctx, out service.Outcome) error {
	b, err := json.Marshal(flash{Level: out.Notice.Level, Text: out.Notice.Text, OpenURL: out.OpenURL})
	if err == nil {
		c.Cookie(&fiber.Cookie{
			Name:     flashCookie,
			Value:    base64.RawURLEncoding.EncodeToString(b),
			Path:     "/",
			MaxAge:   60,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// takeFlash returns the pending outcome, if any, and clears it. Values that
// afterAction could not have written are dropped; OpenURL must point at a
// PDF on the review service.
func takeFlash(c *fiber.Ctx, desk service.DeskService) (flash, bool) {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return flash{}, false
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return flash{}, false
	}
	var f flash
	if err := json.Unmarshal(b, &f); err != nil {
		return flash{}, false
	}
	if f.Level != service.LevelSuccess && f.Level != service.LevelError {
		return flash{}, false
	}
	if f.OpenURL != "" && !strings.HasPrefix(f.OpenURL, desk.DownloadURL(model.ArtifactPDF, "")) {
		f.OpenURL = ""
	}
	return f, true
}
