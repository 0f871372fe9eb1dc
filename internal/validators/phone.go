package validators

import "regexp"

// International format: leading +, 2 to 15 digits, no leading zero.
var phoneRe = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

func IsPhoneValid(phone string) bool {
	return phoneRe.MatchString(phone)
}
