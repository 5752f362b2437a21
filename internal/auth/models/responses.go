package models

import "presales/pkg/roles"

// LoginResponse is the payload nested under data on a successful sign-in.
type LoginResponse struct {
	Token       string     `json:"token"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	Role        roles.Role `json:"role"`
	ExpiresIn   int64      `json:"expiresIn"`
}

// MeResponse describes the authenticated principal.
type MeResponse struct {
	UserID      string     `json:"userId"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	Role        roles.Role `json:"role"`
}
