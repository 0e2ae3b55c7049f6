package bluez

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

// ErrNoAdapter indicates no Bluetooth adapter with GATT manager support was
// found on the system bus.
var ErrNoAdapter = errors.New("no bluetooth adapter with GATT support found")

// findAdapter returns the object path of the first org.bluez adapter that
// exposes GattManager1 (and therefore can host a GATT application).
func findAdapter(conn *dbus.Conn) (dbus.ObjectPath, error) {
	var objects managedObjects

	root := conn.Object(bluezBusName, "/")
	if err := root.Call(dbusObjectManagerIface+".GetManagedObjects", 0).Store(&objects); err != nil {
		return "", fmt.Errorf("listing bluez objects: %w", err)
	}

	for path, ifaces := range objects {
		if _, ok := ifaces[gattManagerIface]; ok {
			logrus.WithFields(logrus.Fields{
				"function": "findAdapter",
				"adapter":  string(path),
			}).Info("Found GATT-capable bluetooth adapter")
			return path, nil
		}
	}

	return "", ErrNoAdapter
}

// powerOn sets the adapter's Powered property so it can advertise and accept
// connections.
func powerOn(conn *dbus.Conn, adapter dbus.ObjectPath) error {
	obj := conn.Object(bluezBusName, adapter)
	call := obj.Call(dbusPropsIface+".Set", 0, adapterIface, "Powered", dbus.MakeVariant(true))
	if call.Err != nil {
		return fmt.Errorf("powering on adapter %s: %w", adapter, call.Err)
	}
	return nil
}

// registerApplication hands the exported GATT application to BlueZ.
func registerApplication(conn *dbus.Conn, adapter dbus.ObjectPath) error {
	obj := conn.Object(bluezBusName, adapter)
	call := obj.Call(gattManagerIface+".RegisterApplication", 0,
		dbus.ObjectPath(appPath), map[string]dbus.Variant{})
	if call.Err != nil {
		return fmt.Errorf("registering GATT application: %w", call.Err)
	}
	return nil
}

// unregisterApplication withdraws the GATT application from BlueZ.
func unregisterApplication(conn *dbus.Conn, adapter dbus.ObjectPath) error {
	obj := conn.Object(bluezBusName, adapter)
	call := obj.Call(gattManagerIface+".UnregisterApplication", 0, dbus.ObjectPath(appPath))
	return call.Err
}

// registerAdvertisement hands the exported LE advertisement to BlueZ.
func registerAdvertisement(conn *dbus.Conn, adapter dbus.ObjectPath) error {
	obj := conn.Object(bluezBusName, adapter)
	call := obj.Call(leAdvManagerIface+".RegisterAdvertisement", 0,
		dbus.ObjectPath(advPath), map[string]dbus.Variant{})
	if call.Err != nil {
		return fmt.Errorf("registering LE advertisement: %w", call.Err)
	}
	return nil
}

// unregisterAdvertisement withdraws the LE advertisement from BlueZ.
func unregisterAdvertisement(conn *dbus.Conn, adapter dbus.ObjectPath) error {
	obj := conn.Object(bluezBusName, adapter)
	call := obj.Call(leAdvManagerIface+".UnregisterAdvertisement", 0, dbus.ObjectPath(advPath))
	return call.Err
}
