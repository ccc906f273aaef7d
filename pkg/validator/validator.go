package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks that s has a local@domain.tld shape. It is
// deliberately permissive; deliverability is not its concern.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateCPF validates a Brazilian CPF number. Punctuation is ignored,
// so both "529.982.247-25" and "52998224725" are accepted. A CPF made of
// a single repeated digit is rejected even though its check digits match.
func ValidateCPF(s string) bool {
	digits := onlyDigits(s)
	if len(digits) != 11 {
		return false
	}
	if allSameDigit(digits) {
		return false
	}
	if checkDigit(digits[:9], 10) != digits[9] {
		return false
	}
	return checkDigit(digits[:10], 11) == digits[10]
}

// checkDigit computes a CPF verification digit over ds using descending
// weights starting at firstWeight, modulo 11. A remainder below 2 yields 0.
func checkDigit(ds string, firstWeight int) byte {
	sum := 0
	for i := 0; i < len(ds); i++ {
		sum += int(ds[i]-'0') * (firstWeight - i)
	}
	rem := sum % 11
	if rem < 2 {
		return '0'
	}
	return byte('0' + 11 - rem)
}

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// RegisterBindings installs the custom "cpf" rule on gin's binding
// validator so request DTOs can declare binding:"cpf".
func RegisterBindings() {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		v.RegisterValidation("cpf", func(fl playground.FieldLevel) bool {
			return ValidateCPF(fl.Field().String())
		})
	}
}
