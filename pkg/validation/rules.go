package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// MaxPasswordBytes: bcrypt не принимает пароли длиннее 72 байт.
const MaxPasswordBytes = 72

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("phone", isPhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("password_strength", isStrongPassword); err != nil {
		return err
	}
	if err := v.RegisterValidation("money", isMoney); err != nil {
		return err
	}
	return nil
}

// isPhoneNumber - международный формат: необязательный "+", затем 2..15 цифр, первая не 0
func isPhoneNumber(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// IsMoney - сумма больше нуля и не точнее копеек.
func IsMoney(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(2))
}

// isMoney получает decimal уже приведённым к float64 (см. registerNullTypes).
func isMoney(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return IsMoney(decimal.NewFromFloat(field.Float()))
	}
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return IsMoney(d)
	}
	return false
}

// isStrongPassword - от 8 символов и не больше MaxPasswordBytes байт, заглавная, строчная, цифра и спецсимвол
func isStrongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len([]rune(s)) < 8 || len(s) > MaxPasswordBytes {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "max":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("не более %s элементов", fe.Param())
		}
		return fmt.Sprintf("не длиннее %s символов", fe.Param())
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("не менее %s элементов", fe.Param())
		}
		return fmt.Sprintf("не короче %s символов", fe.Param())
	case "gt":
		return fmt.Sprintf("должно быть больше %s", fe.Param())
	case "gte":
		return fmt.Sprintf("должно быть не меньше %s", fe.Param())
	case "lte":
		return fmt.Sprintf("должно быть не больше %s", fe.Param())
	case "email":
		return "некорректный email"
	case "uuid", "uuid4":
		return "некорректный идентификатор"
	case "oneof":
		return fmt.Sprintf("допустимые значения: %s", fe.Param())
	case "phone":
		return "некорректный номер телефона"
	case "password_strength":
		return fmt.Sprintf("пароль должен содержать от 8 символов (не более %d байт), заглавную и строчную буквы, цифру и спецсимвол", MaxPasswordBytes)
	case "money":
		return "должно быть больше нуля, не более двух знаков после запятой"
	case "datetime":
		return fmt.Sprintf("ожидается формат %s", fe.Param())
	default:
		return fmt.Sprintf("не прошло проверку '%s'", fe.Tag())
	}
}
