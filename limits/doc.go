// Package limits provides centralized size limits and validation functions
// for the file-drop GATT protocol. This package ensures consistent size
// enforcement across all components of the server.
//
// # Size Hierarchy
//
// The package defines one limit per GATT channel:
//
//   - MaxChunkSize (512 bytes): The largest accepted payload for a single
//     write to the data characteristic. It matches the largest ATT MTU BlueZ
//     negotiates, so a well-behaved Web Bluetooth client never hits it.
//
//   - MaxFileNameLength (255 bytes): The maximum declared file name length.
//     This matches typical filesystem limits and keeps name writes inside a
//     single ATT packet.
//
//   - MaxCommandLength (16 bytes): The bound on control-channel writes. The
//     longest defined command is "CANCEL"; anything larger is noise.
//
// # Validation Functions
//
// Each validation function checks for empty payloads and size violations:
//
//	err := limits.ValidateFileName(value)
//	if err != nil {
//	    // Handle validation error (ErrValueEmpty or ErrValueTooLarge)
//	}
//
// Validation happens at the GATT boundary so oversized writes are rejected
// with a D-Bus error before they reach a session; the storage resolver
// re-checks the name limit at commit time.
package limits
