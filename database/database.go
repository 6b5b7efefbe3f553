package database

import "errors"

// ErrNotFound is returned when a guild has no log channel configured.
var ErrNotFound = errors.New("no log channel set")

// DB maps guild IDs to their configured log channel. Implementations persist
// every mutation before returning.
type DB interface {
	Get(guildID string) (int64, error)
	Set(guildID string, channelID int64) error
	Clear(guildID string) error
	Close() error
}
