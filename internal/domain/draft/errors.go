package draft

import "errors"

var (
	// ErrConfigurationMissing means no league settings exist; a draft cannot start.
	ErrConfigurationMissing = errors.New("league settings not configured")
	// ErrCatalogUnavailable means the player catalog failed to load; a draft cannot start.
	ErrCatalogUnavailable = errors.New("player catalog unavailable")
	// ErrInvalidPickRequest means a pick arrived while the draft is not in progress.
	ErrInvalidPickRequest = errors.New("invalid pick request")
	// ErrUnmatchedPlayerName is informational: the name has no catalog match.
	ErrUnmatchedPlayerName = errors.New("player name not in catalog")
	// ErrExplanationServiceFailure is informational: the prose explanation failed.
	ErrExplanationServiceFailure = errors.New("explanation service failure")
)
