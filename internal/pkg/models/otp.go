package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// OtpCode is an immutable 6-digit one-time password, validated on
// construction.
type OtpCode struct {
	value string
}

// NewOtpCode validates a candidate code. It never inspects the stored
// secret, so it is safe to call on untrusted input.
func NewOtpCode(value string) (OtpCode, error) {
	if !otpPattern.MatchString(value) {
		return OtpCode{}, fmt.Errorf("otp code must be exactly 6 digits")
	}
	return OtpCode{value: value}, nil
}

// GenerateOtpCode draws a code uniformly from [100000, 999999] using
// crypto/rand, so the result is always 6 digits with no leading zero.
func GenerateOtpCode() (OtpCode, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return OtpCode{}, fmt.Errorf("failed to generate otp: %w", err)
	}
	return OtpCode{value: fmt.Sprintf("%d", n.Int64()+100000)}, nil
}

func (c OtpCode) String() string {
	return c.value
}
