package model

// User roles at the login boundary. Role gates UI routing only; service
// routes stay unauthenticated.
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

// User is a login credential record. Password is matched in plaintext against
// this simulated boundary only; a real backend must hash it.
type User struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

// Public returns the user without the credential, for response payloads.
func (u User) Public() User {
	u.Password = ""
	return u
}
