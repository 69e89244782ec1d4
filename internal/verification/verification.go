// Package verification confirms ownership of the backup email address with a
// one-time code. Delivery is simulated: the code is handed to a local Sender
// and never leaves the machine.
package verification

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// ErrInvalidCode is returned when a code does not match the challenge.
var ErrInvalidCode = errors.New("invalid verification code")

// codeValidity is how long a code stays valid.
const codeValidity = 5 * time.Minute

const issuer = "daily-ledger"

// Sender delivers a code to an address.
type Sender interface {
	Send(email, code string) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(email, code string) error

// Send calls f.
func (f SenderFunc) Send(email, code string) error {
	return f(email, code)
}

// Challenge is an issued, not yet verified code.
type Challenge struct {
	IssuedAt time.Time `json:"issued_at"`
	Email    string    `json:"email"`
	Secret   string    `json:"secret"`
}

// Verifier issues and checks email challenges.
type Verifier struct {
	sender Sender
	now    func() time.Time
}

// NewVerifier returns a verifier that delivers codes through sender.
func NewVerifier(sender Sender) *Verifier {
	return &Verifier{sender: sender, now: time.Now}
}

// WithClock replaces the verifier's time source.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// NormalizeEmail validates an address and returns its bare form.
func NormalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidEmail, email)
	}
	return strings.ToLower(addr.Address), nil
}

// Start validates email, issues a six-digit code and sends it.
func (v *Verifier) Start(email string) (*Challenge, error) {
	addr, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: addr,
		Period:      uint(codeValidity.Seconds()),
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create verification secret: %w", err)
	}

	challenge := &Challenge{
		Email:    addr,
		Secret:   key.Secret(),
		IssuedAt: v.now(),
	}

	code, err := totp.GenerateCodeCustom(challenge.Secret, challenge.IssuedAt, validateOpts())
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}
	if err := v.sender.Send(addr, code); err != nil {
		return nil, fmt.Errorf("failed to deliver code: %w", err)
	}
	return challenge, nil
}

// Verify checks code against the challenge, allowing one period of skew.
func (v *Verifier) Verify(challenge *Challenge, code string) error {
	if challenge == nil {
		return ErrInvalidCode
	}
	ok, err := totp.ValidateCustom(strings.TrimSpace(code), challenge.Secret, v.now(), validateOpts())
	if err != nil || !ok {
		return ErrInvalidCode
	}
	return nil
}

func validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    uint(codeValidity.Seconds()),
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}
