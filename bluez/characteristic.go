package bluez

import (
	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/bluedrop/limits"
	"github.com/opd-ai/bluedrop/transfer"
)

// characteristic is the common GATT characteristic shape shared by the three
// channels. Each instance is exported on the bus under its own object path
// and forwards events to the session owned by the acting device.
type characteristic struct {
	uuid     string
	flags    []string
	sessions *transfer.Manager
}

// deviceFromOptions extracts the connection identity from a characteristic
// operation's option dict. BlueZ passes the acting device's object path
// under the "device" key.
func deviceFromOptions(options map[string]dbus.Variant) string {
	v, ok := options["device"]
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": "deviceFromOptions",
		}).Warn("Characteristic operation without device option, using shared fallback session")
		return fallbackDevice
	}

	switch path := v.Value().(type) {
	case dbus.ObjectPath:
		return string(path)
	case string:
		return path
	default:
		return fallbackDevice
	}
}

// properties returns the characteristic's org.bluez.GattCharacteristic1
// property map for GetManagedObjects and Properties.GetAll.
func (c *characteristic) properties() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"Service": dbus.MakeVariant(dbus.ObjectPath(servicePath)),
		"UUID":    dbus.MakeVariant(c.uuid),
		"Flags":   dbus.MakeVariant(c.flags),
	}
}

// GetAll implements org.freedesktop.DBus.Properties for the characteristic.
func (c *characteristic) GetAll(iface string) (map[string]dbus.Variant, *dbus.Error) {
	if iface != gattChrcIface {
		return nil, dbus.MakeFailedError(dbus.ErrMsgInvalidArg)
	}
	return c.properties(), nil
}

// Get implements org.freedesktop.DBus.Properties for the characteristic.
func (c *characteristic) Get(iface, prop string) (dbus.Variant, *dbus.Error) {
	props, err := c.GetAll(iface)
	if err != nil {
		return dbus.Variant{}, err
	}
	v, ok := props[prop]
	if !ok {
		return dbus.Variant{}, dbus.MakeFailedError(dbus.ErrMsgInvalidArg)
	}
	return v, nil
}

// StartNotify implements org.bluez.GattCharacteristic1. None of the
// file-drop characteristics support notifications.
func (c *characteristic) StartNotify() *dbus.Error {
	return dbus.NewError(errNotSupported, nil)
}

// StopNotify implements org.bluez.GattCharacteristic1.
func (c *characteristic) StopNotify() *dbus.Error {
	return dbus.NewError(errNotSupported, nil)
}

// dataCharacteristic receives raw file chunks on unacknowledged writes.
type dataCharacteristic struct {
	characteristic
}

func newDataCharacteristic(sessions *transfer.Manager) *dataCharacteristic {
	return &dataCharacteristic{characteristic{
		uuid:     DataCharUUID,
		flags:    []string{"write", "write-without-response"},
		sessions: sessions,
	}}
}

// ReadValue implements org.bluez.GattCharacteristic1. The data channel is
// write-only.
func (c *dataCharacteristic) ReadValue(options map[string]dbus.Variant) ([]byte, *dbus.Error) {
	return nil, dbus.NewError(errNotSupported, nil)
}

// WriteValue appends a chunk to the writing device's active transfer.
// Oversized chunks are rejected at the GATT level; whether the chunk lands
// in a buffer is the session's call and carries no response either way.
func (c *dataCharacteristic) WriteValue(value []byte, options map[string]dbus.Variant) *dbus.Error {
	if len(value) > limits.MaxChunkSize {
		return dbus.NewError(errInvalidValueLength, nil)
	}
	if len(value) == 0 {
		return nil
	}

	c.sessions.Session(deviceFromOptions(options)).Append(value)
	return nil
}

// nameCharacteristic carries the declared target file name.
type nameCharacteristic struct {
	characteristic
}

func newNameCharacteristic(sessions *transfer.Manager) *nameCharacteristic {
	return &nameCharacteristic{characteristic{
		uuid:     NameCharUUID,
		flags:    []string{"read", "write"},
		sessions: sessions,
	}}
}

// ReadValue returns the name currently declared by the reading device.
func (c *nameCharacteristic) ReadValue(options map[string]dbus.Variant) ([]byte, *dbus.Error) {
	name := c.sessions.Session(deviceFromOptions(options)).Name()
	return []byte(name), nil
}

// WriteValue declares the target file name for the writing device's session.
// The name is stored verbatim; sanitization happens at commit time.
func (c *nameCharacteristic) WriteValue(value []byte, options map[string]dbus.Variant) *dbus.Error {
	if err := limits.ValidateFileName(value); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "nameCharacteristic.WriteValue",
			"length":   len(value),
			"error":    err.Error(),
		}).Warn("Rejecting file name write")
		return dbus.NewError(errInvalidValueLength, nil)
	}

	c.sessions.Session(deviceFromOptions(options)).SetName(string(value))
	return nil
}

// controlCharacteristic carries commands in and the status string out.
type controlCharacteristic struct {
	characteristic
}

func newControlCharacteristic(sessions *transfer.Manager) *controlCharacteristic {
	return &controlCharacteristic{characteristic{
		uuid:     ControlCharUUID,
		flags:    []string{"read", "write"},
		sessions: sessions,
	}}
}

// ReadValue returns the reading device's session status verbatim: READY,
// STARTED, SAVED, ERROR or CANCELLED.
func (c *controlCharacteristic) ReadValue(options map[string]dbus.Variant) ([]byte, *dbus.Error) {
	status := c.sessions.Session(deviceFromOptions(options)).Status()
	return []byte(status.String()), nil
}

// WriteValue dispatches a control command to the writing device's session.
// Unknown command words are deliberately ignored; only payloads that cannot
// be a command at all are rejected at the GATT level.
func (c *controlCharacteristic) WriteValue(value []byte, options map[string]dbus.Variant) *dbus.Error {
	if err := limits.ValidateCommand(value); err != nil {
		return dbus.NewError(errInvalidValueLength, nil)
	}

	session := c.sessions.Session(deviceFromOptions(options))
	cmd := transfer.ParseCommand(value)

	logrus.WithFields(logrus.Fields{
		"function":   "controlCharacteristic.WriteValue",
		"session_id": session.ID(),
		"device":     session.Device(),
		"command":    cmd.String(),
	}).Info("Control command received")

	session.HandleCommand(cmd)
	return nil
}
