package transfer

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsReady(t *testing.T) {
	s := NewSession("/org/bluez/hci0/dev_AA", newMockStore())

	assert.Equal(t, StatusReady, s.Status())
	assert.Empty(t, s.Name())
	assert.Equal(t, 0, s.BufferedLen())
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, "/org/bluez/hci0/dev_AA", s.Device())
}

// TestUploadRoundTrip covers the boundary payload sizes around the 512-byte
// chunk ceiling: whatever the chunking, the persisted bytes must equal the
// appended bytes exactly and the final status must be SAVED.
func TestUploadRoundTrip(t *testing.T) {
	sizes := []int{0, 1, 511, 512, 513, 10000}
	chunkings := []int{1, 7, 512}

	for _, size := range sizes {
		payload := make([]byte, size)
		_, err := rand.Read(payload)
		require.NoError(t, err)

		for _, chunkSize := range chunkings {
			t.Run(fmt.Sprintf("size=%d/chunk=%d", size, chunkSize), func(t *testing.T) {
				store := newMockStore()
				s := NewSession("dev", store)

				s.SetName("payload.bin")
				s.Begin()
				for off := 0; off < len(payload); off += chunkSize {
					end := off + chunkSize
					if end > len(payload) {
						end = len(payload)
					}
					s.Append(payload[off:end])
				}
				require.NoError(t, s.Commit())

				assert.Equal(t, StatusSaved, s.Status())
				assert.Equal(t, 0, s.BufferedLen(), "buffer must be cleared after SAVED")

				saves := store.savedFiles()
				require.Len(t, saves, 1)
				assert.Equal(t, "payload.bin", saves[0].name)
				assert.True(t, bytes.Equal(payload, saves[0].data), "persisted bytes differ from appended bytes")
			})
		}
	}
}

func TestCommitWithoutNameIsError(t *testing.T) {
	store := newMockStore()
	s := NewSession("dev", store)

	s.Begin()
	s.Append([]byte("orphaned bytes"))

	err := s.Commit()
	require.ErrorIs(t, err, ErrNoFileName)

	assert.Equal(t, StatusError, s.Status())
	assert.Equal(t, len("orphaned bytes"), s.BufferedLen(), "buffer must be left untouched")
	assert.Empty(t, store.savedFiles(), "no file may be written")
}

func TestCommitRetryAfterFailure(t *testing.T) {
	store := newMockStore()
	store.failWith(errMockDiskFull)
	s := NewSession("dev", store)

	s.SetName("retry.txt")
	s.Begin()
	s.Append([]byte("do not lose me"))

	require.ErrorIs(t, s.Commit(), errMockDiskFull)
	assert.Equal(t, StatusError, s.Status())
	assert.Equal(t, len("do not lose me"), s.BufferedLen(), "failed commit must preserve the buffer")

	// Operator clears the fault; the client retries END without re-sending.
	store.failWith(nil)
	require.NoError(t, s.Commit())

	assert.Equal(t, StatusSaved, s.Status())
	saves := store.savedFiles()
	require.Len(t, saves, 1)
	assert.Equal(t, []byte("do not lose me"), saves[0].data)
}

func TestAbortClearsBufferKeepsName(t *testing.T) {
	store := newMockStore()
	s := NewSession("dev", store)

	s.SetName("keepme.txt")
	s.Begin()
	s.Append([]byte("half a file"))
	s.Abort()

	assert.Equal(t, StatusCancelled, s.Status())
	assert.Equal(t, 0, s.BufferedLen())
	assert.Equal(t, "keepme.txt", s.Name(), "CANCEL keeps the declared name")
}

// TestAbortKeepsName pins the documented CANCEL behavior: a cancelled upload
// may be restarted with the previously declared name, unaffected by the
// cancelled data.
func TestAbortKeepsName(t *testing.T) {
	store := newMockStore()
	s := NewSession("dev", store)

	s.SetName("photo.jpg")
	s.Begin()
	s.Append([]byte("cancelled bytes"))
	s.Abort()

	s.Begin()
	s.Append([]byte("fresh bytes"))
	require.NoError(t, s.Commit())

	saves := store.savedFiles()
	require.Len(t, saves, 1)
	assert.Equal(t, "photo.jpg", saves[0].name)
	assert.Equal(t, []byte("fresh bytes"), saves[0].data)
}

func TestBeginWhileStartedDiscardsBuffer(t *testing.T) {
	store := newMockStore()
	s := NewSession("dev", store)

	s.SetName("restart.txt")
	s.Begin()
	s.Append([]byte("first attempt"))

	// Implicit cancel-and-restart.
	s.Begin()
	assert.Equal(t, StatusStarted, s.Status())
	assert.Equal(t, 0, s.BufferedLen())

	s.Append([]byte("second attempt"))
	require.NoError(t, s.Commit())

	saves := store.savedFiles()
	require.Len(t, saves, 1)
	assert.Equal(t, []byte("second attempt"), saves[0].data)
}

func TestAppendOutsideStartedIsDropped(t *testing.T) {
	store := newMockStore()
	s := NewSession("dev", store)

	// READY: no transfer active yet.
	s.Append([]byte("early"))
	assert.Equal(t, 0, s.BufferedLen())
	assert.Equal(t, StatusReady, s.Status())

	// After a commit the session is SAVED; stragglers are dropped too.
	s.SetName("done.txt")
	s.Begin()
	s.Append([]byte("content"))
	require.NoError(t, s.Commit())

	s.Append([]byte("late"))
	assert.Equal(t, 0, s.BufferedLen())
	assert.Equal(t, StatusSaved, s.Status())
}

func TestUnknownCommandLeavesStateUnchanged(t *testing.T) {
	store := newMockStore()
	s := NewSession("dev", store)

	s.SetName("stable.txt")
	s.Begin()
	s.Append([]byte("data"))

	s.HandleCommand(ParseCommand([]byte("REWIND")))

	assert.Equal(t, StatusStarted, s.Status())
	assert.Equal(t, len("data"), s.BufferedLen())
}

// TestStartRecoversFromAnyState verifies that a fresh START returns the
// session to a clean STARTED state regardless of prior status.
func TestStartRecoversFromAnyState(t *testing.T) {
	store := newMockStore()
	s := NewSession("dev", store)

	// Into ERROR via commit-without-name.
	s.Begin()
	s.Append([]byte("x"))
	_ = s.Commit()
	require.Equal(t, StatusError, s.Status())

	s.Begin()
	assert.Equal(t, StatusStarted, s.Status())
	assert.Equal(t, 0, s.BufferedLen())

	// Into CANCELLED, then recover again.
	s.Abort()
	require.Equal(t, StatusCancelled, s.Status())

	s.Begin()
	assert.Equal(t, StatusStarted, s.Status())
}

func TestHandleCommandDispatch(t *testing.T) {
	store := newMockStore()
	s := NewSession("dev", store)
	s.SetName("dispatch.txt")

	s.HandleCommand(CommandStart)
	assert.Equal(t, StatusStarted, s.Status())

	s.Append([]byte("via commands"))

	s.HandleCommand(CommandEnd)
	assert.Equal(t, StatusSaved, s.Status())

	s.HandleCommand(CommandStart)
	s.HandleCommand(CommandCancel)
	assert.Equal(t, StatusCancelled, s.Status())

	require.Len(t, store.savedFiles(), 1)
}
