package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// UserProfile is the signed-in user as returned by GET /api/users/{id}.
// The password never comes back and is never kept.
type UserProfile struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Industry  string `json:"industry,omitempty"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string   `json:"token"`
	UserID StringID `json:"user_id"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Industry string `json:"industry,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries the editable profile fields. Empty fields are left
// unchanged by the backend.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
	Password string `json:"password,omitempty"`
}

// StringID decodes an identifier sent either as a JSON number or string.
type StringID string

func (s *StringID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || len(b) == 0 {
		return errors.New("id: empty value")
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = StringID(strings.TrimSpace(v))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = StringID(n.String())
	return nil
}
