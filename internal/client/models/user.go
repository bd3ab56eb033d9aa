package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// User is the server's account record. The client only caches it.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*u = User(raw.plain)
	if u.ID == "" {
		u.ID = raw.MongoID
	}
	return nil
}

// Owner is the author of a document, annotation or reply. The service sends
// either a populated user object or just a display string.
type Owner struct {
	ID    string
	Name  string
	Email string
}

func (o *Owner) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*o = Owner{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*o = Owner{Name: s}
		return nil
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return err
	}
	*o = Owner{ID: u.ID, Name: u.Name, Email: u.Email}
	return nil
}

func (o Owner) MarshalJSON() ([]byte, error) {
	if o.ID == "" && o.Email == "" {
		return json.Marshal(o.Name)
	}
	return json.Marshal(User{ID: o.ID, Name: o.Name, Email: o.Email})
}

// DisplayName is the name to print, "Unknown" when the server sent none.
func (o Owner) DisplayName() string {
	switch {
	case o.Name != "":
		return o.Name
	case o.Email != "":
		return o.Email
	}
	return "Unknown"
}
