package domain

import "encoding/json"

// Identity is the user identity carried in the bearer token payload.
type Identity struct {
	ID        string `json:"id,omitempty"`
	LegacyID  string `json:"_id,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`

	// Claims holds the full decoded payload, including fields not mapped above.
	Claims map[string]any `json:"-"`
}

// UserID returns whichever identifier the backend put in the token.
func (i Identity) UserID() string {
	if i.ID != "" {
		return i.ID
	}
	return i.LegacyID
}

// CreatorSummary is the partial user embedded in collection records.
type CreatorSummary struct {
	ID       string `json:"_id,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// SignupInput carries the fields required to register an account.
// Validation runs in field order; the first failing field is reported.
type SignupInput struct {
	FullName    string `json:"fullName" validate:"notblank"            label:"Full name"`
	Username    string `json:"username" validate:"notblank"            label:"Username"`
	Email       string `json:"email"    validate:"notblank,emailshape" label:"Email"`
	Password    string `json:"password" validate:"notblank"            label:"Password"`
	DateOfBirth string `json:"dob"      validate:"notblank"            label:"Date of birth"`
	Phone       string `json:"phone"    validate:"notblank,phone"      label:"Phone"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Identifier string `json:"identifier" validate:"notblank" label:"Email or username"`
	Password   string `json:"password"   validate:"notblank" label:"Password"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token    string
	Identity Identity
	// Payload is the raw backend response body.
	Payload json.RawMessage
}

// SignupResult is returned by a successful signup.
type SignupResult struct {
	Message string
	Payload json.RawMessage
}
