package bluez

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/bluedrop/transfer"
)

// Transport hosts the file-drop GATT service on the system bus and forwards
// its events to the transfer session manager.
type Transport struct {
	conn     *dbus.Conn
	sessions *transfer.Manager
	app      *application
	adv      *advertisement

	adapter dbus.ObjectPath
	sigCh   chan *dbus.Signal
	stopCh  chan struct{}

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewTransport connects to the system bus and prepares (but does not yet
// register) the GATT application for the given session manager.
func NewTransport(sessions *transfer.Manager) (*Transport, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to system bus: %w", err)
	}

	return &Transport{
		conn:     conn,
		sessions: sessions,
		app:      newApplication(sessions),
		adv:      newAdvertisement(),
		stopCh:   make(chan struct{}),
	}, nil
}

// Start exports the GATT application and advertisement, registers both with
// the first GATT-capable adapter, and begins watching for disconnects.
func (t *Transport) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return fmt.Errorf("transport already started")
	}

	adapter, err := findAdapter(t.conn)
	if err != nil {
		return err
	}
	t.adapter = adapter

	if err := powerOn(t.conn, adapter); err != nil {
		return err
	}

	if err := t.app.export(t.conn); err != nil {
		return fmt.Errorf("exporting GATT application: %w", err)
	}
	if err := t.adv.export(t.conn); err != nil {
		t.app.unexport(t.conn)
		return fmt.Errorf("exporting advertisement: %w", err)
	}

	if err := registerApplication(t.conn, adapter); err != nil {
		t.adv.unexport(t.conn)
		t.app.unexport(t.conn)
		return err
	}
	if err := registerAdvertisement(t.conn, adapter); err != nil {
		// Keep serving connected centrals even if advertising is denied
		// (another advertiser may hold the slot); discovery just won't work.
		logrus.WithFields(logrus.Fields{
			"function": "Start",
			"error":    err.Error(),
		}).Warn("LE advertisement registration failed, service not discoverable")
	}

	if err := t.watchDisconnects(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Start",
			"error":    err.Error(),
		}).Warn("Disconnect watching unavailable, abandoned sessions will linger")
	}

	t.started = true

	logrus.WithFields(logrus.Fields{
		"function":     "Start",
		"adapter":      string(t.adapter),
		"service_uuid": ServiceUUID,
		"local_name":   AdvertisedName,
	}).Info("GATT file-drop service registered and advertising")

	return nil
}

// watchDisconnects subscribes to device property changes and removals so a
// dropped connection releases its session (implicit cancel).
func (t *Transport) watchDisconnects() error {
	if err := t.conn.AddMatchSignal(
		dbus.WithMatchInterface(dbusPropsIface),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchArg(0, deviceIface),
	); err != nil {
		return err
	}
	if err := t.conn.AddMatchSignal(
		dbus.WithMatchInterface(dbusObjectManagerIface),
		dbus.WithMatchMember("InterfacesRemoved"),
	); err != nil {
		return err
	}

	t.sigCh = make(chan *dbus.Signal, 64)
	t.conn.Signal(t.sigCh)

	go t.signalLoop()
	return nil
}

// signalLoop drains bus signals until the transport closes.
func (t *Transport) signalLoop() {
	for {
		select {
		case <-t.stopCh:
			t.conn.RemoveSignal(t.sigCh)
			return
		case sig, ok := <-t.sigCh:
			if !ok {
				return
			}
			t.handleSignal(sig)
		}
	}
}

// handleSignal turns device disconnects into session drops.
func (t *Transport) handleSignal(sig *dbus.Signal) {
	switch sig.Name {
	case dbusPropsIface + ".PropertiesChanged":
		if len(sig.Body) < 2 {
			return
		}
		iface, ok := sig.Body[0].(string)
		if !ok || iface != deviceIface {
			return
		}
		changed, ok := sig.Body[1].(map[string]dbus.Variant)
		if !ok {
			return
		}
		v, ok := changed["Connected"]
		if !ok {
			return
		}
		if connected, ok := v.Value().(bool); ok && !connected {
			logrus.WithFields(logrus.Fields{
				"function": "handleSignal",
				"device":   string(sig.Path),
			}).Info("Central disconnected, releasing its session")
			t.sessions.Drop(string(sig.Path))
		}

	case dbusObjectManagerIface + ".InterfacesRemoved":
		if len(sig.Body) < 2 {
			return
		}
		path, ok := sig.Body[0].(dbus.ObjectPath)
		if !ok {
			return
		}
		ifaces, ok := sig.Body[1].([]string)
		if !ok {
			return
		}
		for _, iface := range ifaces {
			if iface == deviceIface {
				t.sessions.Drop(string(path))
				return
			}
		}
	}
}

// Close unregisters the service and advertisement, stops the signal loop and
// disconnects from the bus.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	close(t.stopCh)

	if t.started {
		if err := unregisterAdvertisement(t.conn, t.adapter); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Close",
				"error":    err.Error(),
			}).Warn("Failed to unregister advertisement")
		}
		if err := unregisterApplication(t.conn, t.adapter); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Close",
				"error":    err.Error(),
			}).Warn("Failed to unregister GATT application")
		}
		t.adv.unexport(t.conn)
		t.app.unexport(t.conn)
		t.started = false
	}

	return t.conn.Close()
}
