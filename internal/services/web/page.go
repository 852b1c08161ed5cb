package web

import (
	"github.com/louisbranch/drivelink/internal/platform/i18n"
	"golang.org/x/text/language"
)

// RegisterPage is the data rendered by registerPage. Labels arrive localized.
type RegisterPage struct {
	Lang            string
	Title           string
	Heading         string
	EmailLabel      string
	PasswordLabel   string
	SubmitLabel     string
	SubmittingLabel string
	// Email is echoed back after a submission. The password never is.
	Email         string
	StatusMessage string
}

// newRegisterPage fills the localized labels for tag.
func newRegisterPage(tag language.Tag, email, statusMessage string) RegisterPage {
	loc := i18n.Printer(tag)
	return RegisterPage{
		Lang:            tag.String(),
		Title:           i18n.LocalizeText(loc, i18n.KeyPageTitle, "Register"),
		Heading:         i18n.LocalizeText(loc, i18n.KeyPageHeading, "Register Test"),
		EmailLabel:      i18n.LocalizeText(loc, i18n.KeyFieldEmail, "Email"),
		PasswordLabel:   i18n.LocalizeText(loc, i18n.KeyFieldPassword, "Password"),
		SubmitLabel:     i18n.LocalizeText(loc, i18n.KeySubmit, "Register"),
		SubmittingLabel: i18n.LocalizeText(loc, i18n.KeySubmitting, "Registering..."),
		Email:           email,
		StatusMessage:   statusMessage,
	}
}
