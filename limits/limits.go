package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxChunkSize is the largest accepted payload for a single write to the
	// data characteristic. It matches the largest ATT MTU BlueZ negotiates
	// (512 octets) so a well-behaved Web Bluetooth client never hits it.
	MaxChunkSize = 512

	// MaxFileNameLength is the maximum allowed file name length in bytes.
	// The value (255) matches typical filesystem limits and keeps name
	// characteristic writes inside a single ATT packet.
	MaxFileNameLength = 255

	// MaxCommandLength bounds writes to the control characteristic. The
	// longest defined command is "CANCEL"; anything larger is noise.
	MaxCommandLength = 16
)

var (
	// ErrValueEmpty indicates an empty value was provided.
	ErrValueEmpty = errors.New("empty value")

	// ErrValueTooLarge indicates a value exceeds its maximum size.
	ErrValueTooLarge = errors.New("value too large")
)

// ValidateChunk validates a data-characteristic payload against MaxChunkSize.
// Returns an error with context including the actual and maximum sizes.
func ValidateChunk(chunk []byte) error {
	if len(chunk) == 0 {
		return ErrValueEmpty
	}
	if len(chunk) > MaxChunkSize {
		return fmt.Errorf("%w: chunk size %d exceeds limit %d", ErrValueTooLarge, len(chunk), MaxChunkSize)
	}
	return nil
}

// ValidateFileName validates a declared file name against MaxFileNameLength.
// Returns an error with context if the name is empty or exceeds the limit.
func ValidateFileName(name []byte) error {
	if len(name) == 0 {
		return ErrValueEmpty
	}
	if len(name) > MaxFileNameLength {
		return fmt.Errorf("%w: name length %d exceeds limit %d", ErrValueTooLarge, len(name), MaxFileNameLength)
	}
	return nil
}

// ValidateCommand validates a control-characteristic payload against
// MaxCommandLength. Unknown command words are not an error here; the session
// layer ignores them deliberately.
func ValidateCommand(command []byte) error {
	if len(command) == 0 {
		return ErrValueEmpty
	}
	if len(command) > MaxCommandLength {
		return fmt.Errorf("%w: command length %d exceeds limit %d", ErrValueTooLarge, len(command), MaxCommandLength)
	}
	return nil
}
