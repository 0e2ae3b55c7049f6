// Package transfer implements the upload session protocol for the file-drop
// service.
//
// Each connected client owns one Session: a small state machine driven by
// writes to the name, data and control channels of the GATT service. The
// Manager keys live sessions by connection identity so concurrent clients
// can never mix their data into one buffer.
//
// Example:
//
//	manager := transfer.NewManager(store)
//	session := manager.Session(devicePath)
//	session.SetName("photo.jpg")
//	session.HandleCommand(transfer.CommandStart)
//	session.Append(chunk)
//	session.HandleCommand(transfer.CommandEnd)
//	fmt.Println(session.Status()) // SAVED
//
// The session's status string is exposed verbatim to clients reading the
// control channel: READY, STARTED, SAVED, ERROR or CANCELLED.
package transfer
