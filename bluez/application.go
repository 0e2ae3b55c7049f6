package bluez

import (
	"github.com/godbus/dbus/v5"

	"github.com/opd-ai/bluedrop/transfer"
)

// service is the org.bluez.GattService1 object grouping the three
// characteristics.
type service struct{}

func (s *service) properties() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"UUID":    dbus.MakeVariant(ServiceUUID),
		"Primary": dbus.MakeVariant(true),
		"Characteristics": dbus.MakeVariant([]dbus.ObjectPath{
			dataPath,
			namePath,
			controlPath,
		}),
	}
}

// GetAll implements org.freedesktop.DBus.Properties for the service.
func (s *service) GetAll(iface string) (map[string]dbus.Variant, *dbus.Error) {
	if iface != gattServiceIface {
		return nil, dbus.MakeFailedError(dbus.ErrMsgInvalidArg)
	}
	return s.properties(), nil
}

// Get implements org.freedesktop.DBus.Properties for the service.
func (s *service) Get(iface, prop string) (dbus.Variant, *dbus.Error) {
	props, err := s.GetAll(iface)
	if err != nil {
		return dbus.Variant{}, err
	}
	v, ok := props[prop]
	if !ok {
		return dbus.Variant{}, dbus.MakeFailedError(dbus.ErrMsgInvalidArg)
	}
	return v, nil
}

// application is the GATT application object BlueZ introspects through
// org.freedesktop.DBus.ObjectManager when the app is registered.
type application struct {
	service *service
	data    *dataCharacteristic
	name    *nameCharacteristic
	control *controlCharacteristic
}

func newApplication(sessions *transfer.Manager) *application {
	return &application{
		service: &service{},
		data:    newDataCharacteristic(sessions),
		name:    newNameCharacteristic(sessions),
		control: newControlCharacteristic(sessions),
	}
}

// managedObjects is the wire shape of GetManagedObjects:
// object path -> interface name -> property name -> value.
type managedObjects = map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// GetManagedObjects implements org.freedesktop.DBus.ObjectManager for the
// application root. BlueZ calls it once during RegisterApplication to learn
// the full service tree.
func (a *application) GetManagedObjects() (managedObjects, *dbus.Error) {
	return managedObjects{
		servicePath: {
			gattServiceIface: a.service.properties(),
		},
		dataPath: {
			gattChrcIface: a.data.properties(),
		},
		namePath: {
			gattChrcIface: a.name.properties(),
		},
		controlPath: {
			gattChrcIface: a.control.properties(),
		},
	}, nil
}

// export publishes the application tree on the bus.
func (a *application) export(conn *dbus.Conn) error {
	if err := conn.Export(a, appPath, dbusObjectManagerIface); err != nil {
		return err
	}

	if err := conn.Export(a.service, servicePath, dbusPropsIface); err != nil {
		return err
	}

	for _, chrc := range []struct {
		path dbus.ObjectPath
		obj  interface{}
	}{
		{dataPath, a.data},
		{namePath, a.name},
		{controlPath, a.control},
	} {
		if err := conn.Export(chrc.obj, chrc.path, gattChrcIface); err != nil {
			return err
		}
		if err := conn.Export(chrc.obj, chrc.path, dbusPropsIface); err != nil {
			return err
		}
	}

	return nil
}

// unexport removes the application tree from the bus.
func (a *application) unexport(conn *dbus.Conn) {
	conn.Export(nil, appPath, dbusObjectManagerIface)
	conn.Export(nil, servicePath, dbusPropsIface)
	for _, path := range []dbus.ObjectPath{dataPath, namePath, controlPath} {
		conn.Export(nil, path, gattChrcIface)
		conn.Export(nil, path, dbusPropsIface)
	}
}
