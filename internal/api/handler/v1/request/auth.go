package request

import (
	"errors"
	"regexp"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
)

var (
	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")

	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
	// A national id is 10 to 17 digits. Shorter numbers are voter ids.
	identityExp = regexp.MustCompile(`^(\d{10,17}|[1-9]\d{0,9})$`)
)

var passwordRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	ok, err := passwordExp.MatchString(s)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
})

type VoterLoginRequest struct {
	// Identity is the voter's national id or voter id.
	Identity string `json:"identity"`
	Password string `json:"password"`
}

func (req *VoterLoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Identity, validation.Required, validation.Match(identityExp)),
		validation.Field(&req.Password, validation.Required, passwordRule),
	)
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *AdminLoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, is.PrintableASCII, validation.Length(1, 64)),
		validation.Field(&req.Password, validation.Required),
	)
}
