// Package bluez exposes the file-drop GATT service through the host BlueZ
// daemon on the D-Bus system bus.
//
// It is the transport adapter of the system: it exports the GATT application
// (one service with name, data and control characteristics), registers it
// with org.bluez.GattManager1, advertises the service over LE, and forwards
// characteristic reads and writes to the transfer session owned by the
// writing device. Disconnects observed on the bus are turned into implicit
// cancels so abandoned sessions release their buffers.
//
// The radio itself, pairing, and MTU negotiation all belong to BlueZ; this
// package only speaks D-Bus.
package bluez
