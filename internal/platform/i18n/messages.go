package i18n

import "github.com/louisbranch/drivelink/internal/platform/i18n/catalog"

// Message keys shared by the registration surfaces. Values live in the
// embedded catalog files.
const (
	KeyStatusRedirecting = "register.status.redirecting"
	KeyStatusUnexpected  = "register.status.unexpected"
	KeyStatusError       = "register.status.error"
	KeyRequiredFields    = "register.required_fields"
	KeyPageTitle         = "register.page.title"
	KeyPageHeading       = "register.page.heading"
	KeyFieldEmail        = "register.field.email"
	KeyFieldPassword     = "register.field.password"
	KeySubmit            = "register.submit"
	KeySubmitting        = "register.submitting"
)

func init() {
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		panic("i18n: " + err.Error())
	}
	if err := bundle.Register(); err != nil {
		panic("i18n: " + err.Error())
	}
}
