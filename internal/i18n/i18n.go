// Package i18n holds the user-facing strings of the API and picks the
// language for a request. Arabic is the default; English is available via
// ?lang=en or Accept-Language.
//
// Message keys are the English text, so a key missing from a catalog still
// prints something readable.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

const (
	MsgRegistrationCreated = "Registration successful!"
	MsgInvalidCredentials  = "Invalid login credentials"
	MsgUnauthorized        = "Not authorized"
	MsgInternal            = "Something went wrong, please try again"
	MsgInvalidBody         = "Invalid request body"
	MsgEmptyBody           = "Request body is empty"
	MsgInvalidID           = "Invalid registration id"
	MsgValidationFailed    = "Please check the highlighted fields"
	MsgNameInvalid         = "Name is required"
	MsgEmailInvalid        = "Invalid email address"
	MsgPhoneInvalid        = "Invalid phone number"
	MsgExperienceInvalid   = "Invalid experience level"
	MsgFieldInvalid        = "Invalid value"
)

var arabic = map[string]string{
	MsgRegistrationCreated: "تم التسجيل بنجاح!",
	MsgInvalidCredentials:  "بيانات الدخول غير صحيحة",
	MsgUnauthorized:        "غير مصرح",
	MsgInternal:            "حدث خطأ، يرجى المحاولة مرة أخرى",
	MsgInvalidBody:         "طلب غير صالح",
	MsgEmptyBody:           "الطلب فارغ",
	MsgInvalidID:           "رقم التسجيل غير صحيح",
	MsgValidationFailed:    "يرجى التحقق من الحقول المطلوبة",
	MsgNameInvalid:         "الاسم مطلوب",
	MsgEmailInvalid:        "البريد الإلكتروني غير صحيح",
	MsgPhoneInvalid:        "رقم الهاتف غير صحيح",
	MsgExperienceInvalid:   "مستوى الخبرة غير صحيح",
	MsgFieldInvalid:        "قيمة غير صحيحة",
}

var fieldMessages = map[string]string{
	"name":       MsgNameInvalid,
	"email":      MsgEmailInvalid,
	"phone":      MsgPhoneInvalid,
	"experience": MsgExperienceInvalid,
}

var (
	supported = []language.Tag{language.Arabic, language.English}
	matcher   = language.NewMatcher(supported)
	cat       = mustBuildCatalog()
)

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Arabic))
	for key, text := range arabic {
		if err := b.SetString(language.Arabic, key, text); err != nil {
			panic(err)
		}
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
	return b
}

// Default returns the language used when a request expresses no preference.
func Default() language.Tag {
	return supported[0]
}

// Printer returns a message printer for tag backed by the API catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// T translates a single message key.
func T(tag language.Tag, key string) string {
	return Printer(tag).Sprintf(key)
}

// FieldMessage returns the message key describing an invalid form field.
func FieldMessage(field string) string {
	if key, ok := fieldMessages[field]; ok {
		return key
	}
	return MsgFieldInvalid
}

// ResolveTag picks the response language: ?lang= first, then
// Accept-Language, then Default.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}

	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, err := language.Parse(v); err == nil {
			return match(tag)
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return match(tags...)
		}
	}

	return Default()
}

func match(tags ...language.Tag) language.Tag {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return supported[idx]
}
