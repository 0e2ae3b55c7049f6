package bluez

// GATT identity of the file-drop service. Clients (Web Bluetooth pages)
// discover the service by ServiceUUID and drive the protocol through the
// three characteristics.
const (
	// ServiceUUID identifies the file transfer service.
	ServiceUUID = "12345678-1234-5678-1234-56789abcdef0"
	// DataCharUUID receives raw file chunks (write, write-without-response).
	DataCharUUID = "12345678-1234-5678-1234-56789abcdef1"
	// NameCharUUID carries the declared target file name (read/write).
	NameCharUUID = "12345678-1234-5678-1234-56789abcdef2"
	// ControlCharUUID carries commands and exposes the session status
	// (read/write).
	ControlCharUUID = "12345678-1234-5678-1234-56789abcdef3"

	// AdvertisedName is the LE advertisement's local name.
	AdvertisedName = "FileTransfer"
)

// BlueZ D-Bus names.
const (
	bluezBusName = "org.bluez"

	adapterIface      = "org.bluez.Adapter1"
	deviceIface       = "org.bluez.Device1"
	gattManagerIface  = "org.bluez.GattManager1"
	gattServiceIface  = "org.bluez.GattService1"
	gattChrcIface     = "org.bluez.GattCharacteristic1"
	leAdvManagerIface = "org.bluez.LEAdvertisingManager1"
	leAdvIface        = "org.bluez.LEAdvertisement1"

	dbusPropsIface         = "org.freedesktop.DBus.Properties"
	dbusObjectManagerIface = "org.freedesktop.DBus.ObjectManager"
)

// D-Bus error names BlueZ defines for GATT operations.
const (
	errNotSupported       = "org.bluez.Error.NotSupported"
	errInvalidValueLength = "org.bluez.Error.InvalidValueLength"
)

// Object paths for the exported application.
const (
	appPath     = "/com/opdai/bluedrop"
	servicePath = appPath + "/service0"
	dataPath    = servicePath + "/char0"
	namePath    = servicePath + "/char1"
	controlPath = servicePath + "/char2"
	advPath     = appPath + "/advertisement0"
)

// fallbackDevice keys the session of a central whose write options carry no
// device path (seen with old BlueZ releases). All such writes share one
// session, matching the pre-BlueZ-5.46 single-client reality.
const fallbackDevice = "unknown-device"
