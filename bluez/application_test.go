package bluez

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/bluedrop/transfer"
)

func TestGetManagedObjectsTree(t *testing.T) {
	app := newApplication(transfer.NewManager(nil))

	objects, derr := app.GetManagedObjects()
	require.Nil(t, derr)

	require.Contains(t, objects, dbus.ObjectPath(servicePath))
	require.Contains(t, objects, dbus.ObjectPath(dataPath))
	require.Contains(t, objects, dbus.ObjectPath(namePath))
	require.Contains(t, objects, dbus.ObjectPath(controlPath))

	svc := objects[servicePath][gattServiceIface]
	assert.Equal(t, ServiceUUID, svc["UUID"].Value())
	assert.Equal(t, true, svc["Primary"].Value())

	chars, ok := svc["Characteristics"].Value().([]dbus.ObjectPath)
	require.True(t, ok)
	assert.Len(t, chars, 3)

	// Every characteristic must point back at the service and carry its UUID.
	for path, uuid := range map[dbus.ObjectPath]string{
		dataPath:    DataCharUUID,
		namePath:    NameCharUUID,
		controlPath: ControlCharUUID,
	} {
		props := objects[path][gattChrcIface]
		assert.Equal(t, uuid, props["UUID"].Value(), "path %s", path)
		assert.Equal(t, dbus.ObjectPath(servicePath), props["Service"].Value())
	}
}

func TestDataCharacteristicFlags(t *testing.T) {
	app := newApplication(transfer.NewManager(nil))

	props := app.data.properties()
	flags, ok := props["Flags"].Value().([]string)
	require.True(t, ok)
	assert.Contains(t, flags, "write-without-response")
	assert.NotContains(t, flags, "read")
}

func TestPropertiesGetAllWrongInterface(t *testing.T) {
	app := newApplication(transfer.NewManager(nil))

	_, derr := app.control.GetAll("org.bluez.Wrong1")
	assert.NotNil(t, derr)

	_, derr = app.service.GetAll("org.bluez.Wrong1")
	assert.NotNil(t, derr)
}

func TestAdvertisementProperties(t *testing.T) {
	adv := newAdvertisement()

	props, derr := adv.GetAll(leAdvIface)
	require.Nil(t, derr)

	assert.Equal(t, "peripheral", props["Type"].Value())
	assert.Equal(t, AdvertisedName, props["LocalName"].Value())
	assert.Equal(t, true, props["IncludeTxPower"].Value())

	uuids, ok := props["ServiceUUIDs"].Value().([]string)
	require.True(t, ok)
	assert.Equal(t, []string{ServiceUUID}, uuids)

	// Release must be callable without a bus.
	assert.Nil(t, adv.Release())
}
