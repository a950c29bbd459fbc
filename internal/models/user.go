package models

// User is the single simulated account. It is never created or destroyed,
// only toggled between present (logged in) and absent by the auth service.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}
