package domain

import (
	"errors"
)

const (
	RoleAdmin = "A"
	RoleUser  = "U"
	RoleGuest = "G"
)

var (
	MessageFailedBodyRequest  = "failed to process request body"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"

	ErrParseUUID    = errors.New("failed to parse UUID")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")

	ErrNoFileProvided = errors.New("no file provided")
)
