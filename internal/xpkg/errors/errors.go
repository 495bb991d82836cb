// Package errors holds the CLI-level sentinels shared by every service mode.
package errors

import "errors"

var (
	ErrHelp           = errors.New("")
	ErrParseCmd       = errors.New("cannot parse arguments")
	ErrModeFlag       = errors.New("mode flag is required")
	ErrUnknownService = errors.New("unknown service, write --help command to see valid services")
)
