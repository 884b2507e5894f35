package services

import "errors"

var (
	ErrSessionNotStarted = errors.New("review reminder session not started")
	ErrMissingAppID      = errors.New("app id is required to start a session")
	ErrMissingMetadata   = errors.New("app version is not available")
	ErrUnknownAction     = errors.New("unknown prompt action")
	ErrDuplicateAction   = errors.New("prompt action id already registered")
	ErrNoPrompt          = errors.New("no prompt is being shown")
)
