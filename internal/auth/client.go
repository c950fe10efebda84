package auth

import "context"

// Client performs the remote login call.
type Client interface {
	Login(ctx context.Context, username, password string) (LoginResponse, error)
}

// LoginResponse is the success payload of a login call.
type LoginResponse struct {
	Key  string `json:"key"`
	User User   `json:"user"`
}

// User holds the identifiers associated with the authenticated account.
type User struct {
	PII      string   `json:"pii"`
	Patients []string `json:"patients"`
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, username, password string) (LoginResponse, error)

func (f ClientFunc) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	return f(ctx, username, password)
}
