package login

import "github.com/jask/carelogin/internal/auth"

// Screen names a navigation destination.
type Screen string

const (
	ScreenLogin           Screen = "Login"
	ScreenRegister        Screen = "Register"
	ScreenResetPassword   Screen = "ResetPassword"
	ScreenWelcomeRepeat   Screen = "WelcomeRepeat"
	ScreenWelcomeRepeatUS Screen = "WelcomeRepeatUS"
)

// Params are the navigation parameters of a route.
type Params struct {
	PatientID string
}

// Route is a destination plus its parameters.
type Route struct {
	Screen Screen
	Params Params
}

// Message keys shown on a failed login.
const (
	MessageUserNotFound = "user-not-found-exception"
	MessageGeneric      = "login-exception"
)

// TargetFor picks the welcome screen shown after a successful login.
func TargetFor(l Locale) Screen {
	if l != nil && l.IsUS() {
		return ScreenWelcomeRepeatUS
	}
	return ScreenWelcomeRepeat
}

// MessageKey maps a failure kind to its translation key.
func MessageKey(k auth.Kind) string {
	if k == auth.KindUserNotFound {
		return MessageUserNotFound
	}
	return MessageGeneric
}
