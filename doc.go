// Package bluedrop implements a Bluetooth LE file-drop service: a GATT
// server that receives files from Web Bluetooth clients and persists them
// under an upload root.
//
// The service exposes one GATT service with three characteristics. Clients
// write the target file name to the name characteristic, write START to the
// control characteristic, stream raw chunks to the data characteristic, and
// write END to commit (or CANCEL to abort). Reading the control
// characteristic returns the session status: READY, STARTED, SAVED, ERROR or
// CANCELLED. Every connected central owns an independent upload session.
//
// Example:
//
//	options := bluedrop.NewOptions()
//	options.UploadRoot = "/srv/uploads"
//
//	server, err := bluedrop.New(options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//
//	if err := server.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
//	// The service is now advertising as "FileTransfer"; uploads land in
//	// /srv/uploads with traversal-safe, collision-free names.
//	select {}
//
// # Subsystems
//
//   - [github.com/opd-ai/bluedrop/transfer]: the upload session state
//     machine, chunk buffer and per-device session manager
//   - [github.com/opd-ai/bluedrop/storage]: file name sanitization,
//     collision handling and atomic persistence
//   - [github.com/opd-ai/bluedrop/bluez]: the GATT application exported to
//     the host BlueZ daemon over D-Bus
//   - [github.com/opd-ai/bluedrop/limits]: shared protocol size limits
package bluedrop
