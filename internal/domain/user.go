package domain

// User is the profile returned by the service. It is immutable once received
// and replaced wholesale on login.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the response of a successful login.
type Credentials struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
