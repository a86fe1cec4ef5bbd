package models

// User is the read-only cached copy of the platform account for the current
// session. The phone number is the user-facing identifier; the synthetic
// email derived from it is what the platform's session endpoint actually
// receives.
type User struct {
	ID             string
	Name           string
	Phone          string
	Email          string
	RegistrationID string
}
