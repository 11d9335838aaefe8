package user

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/tundavala/escola/core"
)

var (
	// password policy
	pwdMinLen     = 8
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = core.Texts{
		"en": fmt.Sprintf("password must contain at least %d characters", pwdMinLen),
		"pt": fmt.Sprintf("a palavra-passe deve ter pelo menos %d caracteres", pwdMinLen),
	}

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = core.Texts{
		"en": "password must not contain whitespace",
		"pt": "a palavra-passe não pode conter espaços",
	}

	pwdNotAllNumTag  = "pwdnotallnum"
	pwdNotAllNumText = core.Texts{
		"en": "password cannot be entirely numeric",
		"pt": "a palavra-passe não pode ser inteiramente numérica",
	}

	pwdComplexityTag  = "pwdcplx"
	pwdComplexityText = core.Texts{
		"en": "password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character",
		"pt": "a palavra-passe deve conter pelo menos 1 maiúscula, 1 minúscula, 1 dígito e 1 carácter especial",
	}
	specialRegex = regexp.MustCompile("[^A-Za-z0-9]")

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = core.Texts{
		"en": "password cannot be similar to the username",
		"pt": "a palavra-passe não pode ser semelhante ao nome de utilizador",
	}
)

// InitValidators registers the password policy.
func InitValidators(validate *validator.Validate, trans *core.Translators) {
	validate.RegisterStructValidation(userStructValidation, NewUser{})
	core.RegisterCustomTranslation(validate, trans, pwdMinLenTag, pwdMinLenText)
	core.RegisterCustomTranslation(validate, trans, pwdNoSpaceTag, pwdNoSpaceText)
	core.RegisterCustomTranslation(validate, trans, pwdNotAllNumTag, pwdNotAllNumText)
	core.RegisterCustomTranslation(validate, trans, pwdComplexityTag, pwdComplexityText)
	core.RegisterCustomTranslation(validate, trans, pwdAttrSimTag, pwdAttrSimText)
}

// userStructValidation does struct level validation on NewUser.
func userStructValidation(sl validator.StructLevel) {
	if nu, ok := sl.Current().Interface().(NewUser); ok && nu.Password != "" {
		if tag := checkPassword(nu.Password, nu.Username); tag != "" {
			sl.ReportError(nu.Password, "password", "Password", tag, "")
		}
	}
}

// checkPassword applies the password policy to `pwd` and returns the tag of the first broken rule:
// - minLen: 8
// - no whitespace
// - not all numeric
// - complexity: 1 upper, 1 lower, 1 digit, 1 special
// - not similar to the username
func checkPassword(pwd, uname string) string {
	var (
		digitCount         int
		hasUpper, hasLower bool
	)

	pwdLen := len([]rune(pwd))
	if pwdLen < pwdMinLen {
		return pwdMinLenTag
	}
	for _, char := range pwd {
		if unicode.IsSpace(char) {
			return pwdNoSpaceTag
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
		if !hasUpper && unicode.IsUpper(char) {
			hasUpper = true
		}
		if !hasLower && unicode.IsLower(char) {
			hasLower = true
		}
	}

	if digitCount == pwdLen {
		return pwdNotAllNumTag
	}

	if !(hasUpper && hasLower && digitCount > 0 && specialRegex.MatchString(pwd)) {
		return pwdComplexityTag
	}

	if uname != "" {
		ratio := difflib.NewMatcher(strings.Split(strings.ToLower(pwd), ""), strings.Split(uname, "")).QuickRatio()
		if ratio >= pwdMaxSim {
			return pwdAttrSimTag
		}
	}
	return ""
}
