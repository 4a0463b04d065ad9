// Package models defines the user, medicine, and auth payload types
// exchanged with the MediMinder API.
package models

import "encoding/json"

// User is the authenticated account as returned by the API.
//
// The backend is inconsistent about the identifier key: some responses
// carry "_id" (Mongo style), others "id". UnmarshalJSON accepts both
// and normalizes into ID, so the ambiguity never leaves this package.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Token    string `json:"token,omitempty"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.AltID
	}
	return nil
}

// AuthResponse is the body of successful register/login calls.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// RegisterRequest is the payload for POST /api/auth/register.
// Email and phone are mutually optional; whichever is empty is omitted.
// Name mirrors the username, matching what the backend expects.
type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the payload for POST /api/auth/login. The backend
// accepts an email or a phone number, but the field is named "email"
// either way.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
