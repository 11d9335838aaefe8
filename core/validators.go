package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/pt"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	pt_translations "github.com/go-playground/validator/v10/translations/pt"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// DefaultLocale is used when the client asks for no supported language.
const DefaultLocale = "en"

var (
	// custom validation tags & texts
	alphaNumUnderTag   = "alphanum_"
	alphaNumUnderRegex = regexp.MustCompile(`^\w+$`)
	alphaNumUnderTexts = Texts{
		"en": "only alphanumeric characters and underscores are allowed",
		"pt": "apenas caracteres alfanuméricos e sublinhados são permitidos",
		"zh": "只允许字母、数字和下划线",
	}

	notBlankTag   = "notblank"
	notBlankTexts = Texts{
		"en": "this field cannot be blank",
		"pt": "este campo não pode estar em branco",
		"zh": "此字段不能为空白",
	}

	requiredTag   = "required"
	requiredTexts = Texts{
		"en": "this field is required",
		"pt": "este campo é obrigatório",
		"zh": "此字段为必填项",
	}
)

// Texts maps a locale to a message. The DefaultLocale entry is used for missing locales.
type Texts map[string]string

// Get returns the message for `locale`, falling back to DefaultLocale.
func (txt Texts) Get(locale string) string {
	if s, ok := txt[locale]; ok {
		return s
	}
	return txt[DefaultLocale]
}

// Translators holds one translator per supported language (en, pt, zh).
type Translators struct {
	uni  *ut.UniversalTranslator
	all  []ut.Translator
	dflt ut.Translator
}

func NewTranslators() *Translators {
	_en := en.New()
	uni := ut.New(_en, _en, pt.New(), zh.New())

	trans := &Translators{uni: uni}
	for _, locale := range []string{"en", "pt", "zh"} {
		t, _ := uni.GetTranslator(locale)
		trans.all = append(trans.all, t)
	}
	trans.dflt = trans.all[0]
	return trans
}

func (trans *Translators) Default() ut.Translator { return trans.dflt }

func (trans *Translators) All() []ut.Translator { return trans.all }

// Find picks the translator matching an Accept-Language header value, e.g. "pt-AO,pt;q=0.9,en;q=0.8".
func (trans *Translators) Find(acceptLanguage string) ut.Translator {
	locales := make([]string, 0, 4)
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}
		locales = append(locales, strings.ToLower(strings.SplitN(tag, "-", 2)[0]))
	}
	t, _ := trans.uni.FindTranslator(locales...)
	return t
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, trans *Translators) {
	for _, t := range trans.All() {
		switch t.Locale() {
		case "pt":
			_ = pt_translations.RegisterDefaultTranslations(validate, t)
		case "zh":
			_ = zh_translations.RegisterDefaultTranslations(validate, t)
		default:
			_ = en_translations.RegisterDefaultTranslations(validate, t)
		}
	}

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(alphaNumUnderTag, alphaNumUnderValidation)
	RegisterCustomTranslation(validate, trans, alphaNumUnderTag, alphaNumUnderTexts)

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, trans, notBlankTag, notBlankTexts)

	RegisterCustomTranslation(validate, trans, requiredTag, requiredTexts, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag, in every language.
func RegisterCustomTranslation(validate *validator.Validate, trans *Translators, tag string, texts Texts, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	for _, translator := range trans.All() {
		text := texts.Get(translator.Locale())
		_ = validate.RegisterTranslation(
			tag, translator,
			func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, _ := t.T(tag, fe.Field())
				return s
			},
		)
	}
}

// Custom Global Validators

// alphaNumUnderValidation only allows alphanumeric characters and underscores.
func alphaNumUnderValidation(fl validator.FieldLevel) bool {
	return alphaNumUnderRegex.MatchString(fl.Field().String())
}

// notBlankValidation rejects strings made only of whitespace.
func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
