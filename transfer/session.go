package transfer

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNoFileName indicates a commit was requested before a name was declared.
var ErrNoFileName = errors.New("no file name set")

// Status represents the client-visible state of an upload session.
//
// Its String form is written verbatim to clients reading the control
// channel.
type Status uint8

const (
	// StatusReady indicates no transfer is in progress.
	StatusReady Status = iota
	// StatusStarted indicates an upload is buffering data.
	StatusStarted
	// StatusSaved indicates the last upload was persisted successfully.
	StatusSaved
	// StatusError indicates the last commit failed; the buffer is preserved
	// so the client may retry END without re-sending data.
	StatusError
	// StatusCancelled indicates the last upload was aborted.
	StatusCancelled
)

// String returns the wire form of the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "READY"
	case StatusStarted:
		return "STARTED"
	case StatusSaved:
		return "SAVED"
	case StatusError:
		return "ERROR"
	case StatusCancelled:
		return "CANCELLED"
	}
	return "READY"
}

// Store persists a completed upload under its client-declared name. It is
// responsible for sanitizing the name against the upload root and for never
// overwriting an existing file.
type Store interface {
	// Save writes data under the declared name and returns the final path.
	Save(name string, data []byte) (string, error)
}

// Session is the state machine for one logical file transfer attempt.
//
// A Session is owned by exactly one client connection. All methods are safe
// for concurrent use; the internal mutex is held for the full duration of a
// commit, so control and data writes arriving mid-persist wait rather than
// corrupt the buffer.
type Session struct {
	id     string
	device string
	store  Store

	mu     sync.Mutex
	name   string
	buf    Buffer
	status Status
}

// NewSession creates a session for the given connection identity.
func NewSession(device string, store Store) *Session {
	s := &Session{
		id:     uuid.New().String(),
		device: device,
		store:  store,
		status: StatusReady,
	}

	logrus.WithFields(logrus.Fields{
		"function":   "NewSession",
		"session_id": s.id,
		"device":     device,
	}).Info("Upload session created")

	return s
}

// ID returns the session's log-correlation identifier.
func (s *Session) ID() string {
	return s.id
}

// Device returns the connection identity that owns the session.
func (s *Session) Device() string {
	return s.device
}

// Status returns the current client-visible status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Name returns the currently declared target file name, or "" if unset.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// BufferedLen returns the number of bytes buffered so far.
func (s *Session) BufferedLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Len()
}

// SetName stores the client-declared target file name verbatim. It is
// allowed in any state and never changes the status; the name is only
// consumed (and sanitized) at commit time.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = name

	logrus.WithFields(logrus.Fields{
		"function":   "SetName",
		"session_id": s.id,
		"device":     s.device,
		"file_name":  name,
	}).Info("Target file name set")
}

// HandleCommand dispatches a parsed control command to the session.
func (s *Session) HandleCommand(cmd Command) {
	switch cmd {
	case CommandStart:
		s.Begin()
	case CommandEnd:
		s.Commit()
	case CommandCancel:
		s.Abort()
	case CommandUnknown:
		// Lenient-parser policy: unknown commands leave the session
		// untouched and the status unchanged.
		logrus.WithFields(logrus.Fields{
			"function":   "HandleCommand",
			"session_id": s.id,
			"device":     s.device,
		}).Debug("Ignoring unrecognized control command")
	}
}

// Begin starts a new upload from any state: the buffer is reset and the
// status becomes STARTED. A START while already STARTED is an implicit
// cancel-and-restart that silently discards the partial buffer, so the
// discarded length is logged.
func (s *Session) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusStarted && s.buf.Len() > 0 {
		logrus.WithFields(logrus.Fields{
			"function":        "Begin",
			"session_id":      s.id,
			"device":          s.device,
			"discarded_bytes": s.buf.Len(),
		}).Warn("START during active transfer, discarding partial buffer")
	}

	s.buf.Reset()
	s.status = StatusStarted

	logrus.WithFields(logrus.Fields{
		"function":   "Begin",
		"session_id": s.id,
		"device":     s.device,
	}).Info("Transfer started, buffer cleared")
}

// Append adds a data-channel chunk to the active upload. Data writes carry
// no response on the wire, so chunks arriving while the session is not
// STARTED are accepted and dropped without touching the status.
func (s *Session) Append(chunk []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusStarted {
		logrus.WithFields(logrus.Fields{
			"function":   "Append",
			"session_id": s.id,
			"device":     s.device,
			"chunk_size": len(chunk),
			"status":     s.status.String(),
		}).Debug("Dropping data chunk outside active transfer")
		return
	}

	s.buf.Append(chunk)

	logrus.WithFields(logrus.Fields{
		"function":   "Append",
		"session_id": s.id,
		"device":     s.device,
		"chunk_size": len(chunk),
		"total":      s.buf.Len(),
	}).Debug("Buffered data chunk")
}

// Commit persists the buffered upload under the declared name.
//
// Without a name the commit is a protocol violation: the status becomes
// ERROR and the buffer is left untouched. On a store failure the status
// becomes ERROR and the buffer is likewise preserved, so the client may
// retry END (after correcting the name) without re-sending data. On success
// the status becomes SAVED and the buffer is cleared.
//
// The returned error is for the caller's logs only; clients observe the
// outcome through the status string.
func (s *Session) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.name == "" {
		logrus.WithFields(logrus.Fields{
			"function":   "Commit",
			"session_id": s.id,
			"device":     s.device,
		}).Error("END received before any file name was set")
		s.status = StatusError
		return ErrNoFileName
	}

	path, err := s.store.Save(s.name, s.buf.Bytes())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":   "Commit",
			"session_id": s.id,
			"device":     s.device,
			"file_name":  s.name,
			"size":       s.buf.Len(),
			"error":      err.Error(),
		}).Error("Failed to persist upload, buffer preserved for retry")
		s.status = StatusError
		return err
	}

	size := s.buf.Len()
	s.buf.Reset()
	s.status = StatusSaved

	logrus.WithFields(logrus.Fields{
		"function":   "Commit",
		"session_id": s.id,
		"device":     s.device,
		"file_name":  s.name,
		"path":       path,
		"size":       size,
	}).Info("Upload saved")

	return nil
}

// Abort cancels the upload from any state: the buffer is cleared and the
// status becomes CANCELLED. The declared name is kept, matching the wire
// protocol's behavior, so a client may CANCEL and START again without
// re-writing the name channel.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	discarded := s.buf.Len()
	s.buf.Reset()
	s.status = StatusCancelled

	logrus.WithFields(logrus.Fields{
		"function":        "Abort",
		"session_id":      s.id,
		"device":          s.device,
		"discarded_bytes": discarded,
	}).Info("Transfer cancelled")
}
