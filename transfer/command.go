package transfer

import "strings"

// Command identifies a control-channel command.
//
// Commands arrive as UTF-8 words on the control characteristic and are
// parsed once into this type so every handler dispatches with an exhaustive
// switch instead of scattered string comparisons.
type Command uint8

const (
	// CommandUnknown represents an unrecognized control write. The session
	// ignores it deliberately: the control channel has no dedicated
	// bad-command status, so lenient parsing is the protocol's policy.
	CommandUnknown Command = iota
	// CommandStart begins a new upload, discarding any partial buffer.
	CommandStart
	// CommandEnd commits the buffered upload to storage.
	CommandEnd
	// CommandCancel aborts the upload and clears the buffer.
	CommandCancel
)

// ParseCommand decodes a control-channel payload into a Command. Leading and
// trailing whitespace is tolerated; the command words themselves are
// case-sensitive, matching the wire protocol.
func ParseCommand(raw []byte) Command {
	switch strings.TrimSpace(string(raw)) {
	case "START":
		return CommandStart
	case "END":
		return CommandEnd
	case "CANCEL":
		return CommandCancel
	default:
		return CommandUnknown
	}
}

// String returns the wire form of the command.
func (c Command) String() string {
	switch c {
	case CommandStart:
		return "START"
	case CommandEnd:
		return "END"
	case CommandCancel:
		return "CANCEL"
	case CommandUnknown:
		return "UNKNOWN"
	}
	return "UNKNOWN"
}
