// Package notify delivers one-time codes to users. The real transport
// (email/SMS gateway) is an external collaborator; the wired sender just
// logs, which is all this deployment needs.
package notify

import "log"

// OTPSender delivers a verification code to a destination address.
// Implementations must not block the request on delivery success.
type OTPSender interface {
	SendOTP(destination, code string)
}

// LogSender writes codes to the process log instead of sending them.
type LogSender struct{}

func (LogSender) SendOTP(destination, code string) {
	log.Printf("[OTP] code for %s: %s", destination, code)
}
