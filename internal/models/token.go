package models

import (
	"time"
)

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// Token pair issued on sign in or refresh
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}

// Session is what sign in and refresh return to the client: the user
// profile fields plus a fresh token pair
type Session struct {
	User   User
	Tokens TokenPair
}
