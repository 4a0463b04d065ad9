package state

// View is the single mutually-exclusive view mode of the application.
// Modeling it as one enum (instead of a set of boolean flags) makes
// impossible combined states unrepresentable.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewForgotPassword
	ViewDashboard
	ViewProfile
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewForgotPassword:
		return "forgot-password"
	case ViewDashboard:
		return "dashboard"
	case ViewProfile:
		return "profile"
	default:
		return "unknown"
	}
}
