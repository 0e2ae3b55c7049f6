package bluez

import (
	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

// advertisement is the org.bluez.LEAdvertisement1 object announcing the
// file-drop service to scanning centrals.
type advertisement struct {
	localName string
}

func newAdvertisement() *advertisement {
	return &advertisement{localName: AdvertisedName}
}

func (a *advertisement) properties() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"Type":           dbus.MakeVariant("peripheral"),
		"ServiceUUIDs":   dbus.MakeVariant([]string{ServiceUUID}),
		"LocalName":      dbus.MakeVariant(a.localName),
		"IncludeTxPower": dbus.MakeVariant(true),
	}
}

// GetAll implements org.freedesktop.DBus.Properties for the advertisement.
func (a *advertisement) GetAll(iface string) (map[string]dbus.Variant, *dbus.Error) {
	if iface != leAdvIface {
		return nil, dbus.MakeFailedError(dbus.ErrMsgInvalidArg)
	}
	return a.properties(), nil
}

// Get implements org.freedesktop.DBus.Properties for the advertisement.
func (a *advertisement) Get(iface, prop string) (dbus.Variant, *dbus.Error) {
	props, err := a.GetAll(iface)
	if err != nil {
		return dbus.Variant{}, err
	}
	v, ok := props[prop]
	if !ok {
		return dbus.Variant{}, dbus.MakeFailedError(dbus.ErrMsgInvalidArg)
	}
	return v, nil
}

// Release implements org.bluez.LEAdvertisement1. BlueZ calls it when the
// advertisement is unregistered or the daemon shuts down.
func (a *advertisement) Release() *dbus.Error {
	logrus.WithFields(logrus.Fields{
		"function": "advertisement.Release",
		"path":     advPath,
	}).Info("Advertisement released by BlueZ")
	return nil
}

// export publishes the advertisement object on the bus.
func (a *advertisement) export(conn *dbus.Conn) error {
	if err := conn.Export(a, advPath, leAdvIface); err != nil {
		return err
	}
	return conn.Export(a, advPath, dbusPropsIface)
}

// unexport removes the advertisement object from the bus.
func (a *advertisement) unexport(conn *dbus.Conn) {
	conn.Export(nil, advPath, leAdvIface)
	conn.Export(nil, advPath, dbusPropsIface)
}
