package bluedrop

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/bluedrop/bluez"
	"github.com/opd-ai/bluedrop/storage"
	"github.com/opd-ai/bluedrop/transfer"
)

// Options contains configuration options for creating a Server.
type Options struct {
	// UploadRoot is the directory all received files are persisted under.
	UploadRoot string
}

// NewOptions creates a default Options: uploads go to a bluedrop folder in
// the user's download directory (or ./uploads without one).
func NewOptions() *Options {
	return &Options{
		UploadRoot: storage.DefaultUploadRoot(),
	}
}

// Server wires the upload store, the per-device session manager and the
// BlueZ GATT transport into one file-drop service.
type Server struct {
	options   *Options
	store     *storage.Store
	sessions  *transfer.Manager
	transport *bluez.Transport
}

// New creates a Server and prepares its upload root. The Bluetooth side is
// not touched until Start.
func New(options *Options) (*Server, error) {
	if options == nil {
		options = NewOptions()
	}

	store, err := storage.NewStore(options.UploadRoot)
	if err != nil {
		return nil, fmt.Errorf("initializing upload store: %w", err)
	}

	s := &Server{
		options:  options,
		store:    store,
		sessions: transfer.NewManager(store),
	}

	logrus.WithFields(logrus.Fields{
		"function":    "New",
		"upload_root": store.Root(),
	}).Info("File-drop server created")

	return s, nil
}

// Start connects to the system bus, registers the GATT service and begins
// advertising. It returns once the service is live; events are handled on
// the bus connection's own goroutines.
func (s *Server) Start() error {
	if s.transport != nil {
		return fmt.Errorf("server already started")
	}

	transport, err := bluez.NewTransport(s.sessions)
	if err != nil {
		return err
	}

	if err := transport.Start(); err != nil {
		transport.Close()
		return err
	}

	s.transport = transport
	return nil
}

// Sessions returns the per-device session manager, mainly for inspection.
func (s *Server) Sessions() *transfer.Manager {
	return s.sessions
}

// UploadRoot returns the directory received files are persisted under.
func (s *Server) UploadRoot() string {
	return s.store.Root()
}

// Close withdraws the GATT service from BlueZ and releases the bus
// connection. Closing a server that was never started is a no-op.
func (s *Server) Close() error {
	if s.transport == nil {
		return nil
	}

	err := s.transport.Close()
	s.transport = nil

	logrus.WithFields(logrus.Fields{
		"function": "Close",
	}).Info("File-drop server stopped")

	return err
}
