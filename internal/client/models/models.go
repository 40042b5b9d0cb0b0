// Package models defines the client-side views of API resources.
package models

import "time"

type Account struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Message struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	SenderID   int64     `json:"senderId"`
	ReceiverID int64     `json:"receiverId"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TokenPair is what the server hands out on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session is the response of register and login.
type Session struct {
	User Account `json:"user"`
	TokenPair
}

// DocumentURL is a presigned link to a research paper's full text.
type DocumentURL struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
