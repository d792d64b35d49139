package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatCategory(category string) string {
	c := strings.ReplaceAll(category, "_", " ")
	return cases.Title(language.English).String(c)
}

// SignupOTPMessage builds the verification email carrying the 6-digit code.
func SignupOTPMessage(to, code string, ttl time.Duration) Message {
	body := fmt.Sprintf(
		`<p>Welcome to DStrA!</p>
<p>Your verification code is <b>%s</b>. It is valid for %d minutes.</p>
<p>If you did not sign up, you can ignore this email.</p>`,
		code, int(ttl.Minutes()),
	)
	return Message{
		To:       to,
		Subject:  "DStrA — Verify your email",
		HTMLBody: body,
		Category: "otp",
	}
}

// ResetLinkMessage builds the password-reset email.
func ResetLinkMessage(to, link string, ttl time.Duration) Message {
	body := fmt.Sprintf(
		`<p>A password reset was requested for your DStrA account.</p>
<p><a href="%s">Reset your password</a> — the link is valid for %d minutes.</p>
<p>If you did not request this, no action is needed.</p>`,
		link, int(ttl.Minutes()),
	)
	return Message{
		To:       to,
		Subject:  "DStrA — Reset your password",
		HTMLBody: body,
		Category: "password_reset",
	}
}

// ContactMessage forwards a contact-form submission to the site inbox.
func ContactMessage(inbox, name, email, text string) Message {
	body := fmt.Sprintf(
		`<p><b>From:</b> %s &lt;%s&gt;</p><p>%s</p>`,
		html.EscapeString(name), html.EscapeString(email), html.EscapeString(text),
	)
	return Message{
		To:       inbox,
		Subject:  fmt.Sprintf("%s — message from %s", formatCategory("contact_form"), html.EscapeString(name)),
		HTMLBody: body,
		Category: "contact",
	}
}
