package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBackupStamp(t *testing.T) {
	at := time.Date(2025, 3, 15, 10, 30, 45, 123*int(time.Millisecond), time.UTC)
	assert.Equal(t, "2025-03-15T10-30-45-123Z", encodeBackupStamp(at))
}

func TestEncodeBackupStampConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	at := time.Date(2025, 3, 15, 7, 30, 45, 0, loc)
	assert.Equal(t, "2025-03-15T10-30-45-000Z", encodeBackupStamp(at))
}

func TestDecodeBackupStamp(t *testing.T) {
	got, err := decodeBackupStamp("2025-03-15T10-30-45-123Z")
	require.NoError(t, err)

	want := time.Date(2025, 3, 15, 10, 30, 45, 123*int(time.Millisecond), time.UTC)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
}

func TestStampRoundTrips(t *testing.T) {
	at := time.Date(2024, 12, 31, 23, 59, 59, 999*int(time.Millisecond), time.UTC)

	decoded, err := decodeBackupStamp(encodeBackupStamp(at))
	require.NoError(t, err)
	assert.True(t, decoded.Equal(at))
}

func TestDecodeBackupStampRejectsMalformedInput(t *testing.T) {
	for _, encoded := range []string{
		"",
		"not-a-stamp",
		"2025-03-15",
		"before-restore-2025-03-15T10-30-45-123Z",
		"2025-03-15T10-30-45Z",
	} {
		_, err := decodeBackupStamp(encoded)
		assert.Error(t, err, "input %q", encoded)
	}
}

func TestBackupFilename(t *testing.T) {
	at := time.Date(2025, 3, 15, 10, 30, 45, 123*int(time.Millisecond), time.UTC)
	assert.Equal(t, "backup-2025-03-15T10-30-45-123Z.json", backupFilename(at))
	assert.Equal(t, "backup-before-restore-2025-03-15T10-30-45-123Z.json", beforeRestoreFilename(at))
}

func TestFilenameStampRoundTrips(t *testing.T) {
	at := time.Date(2025, 3, 15, 10, 30, 45, 123*int(time.Millisecond), time.UTC)

	stamp := stampFromFilename(backupFilename(at))
	decoded, err := decodeBackupStamp(stamp)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(at))
}

func TestIsBackupFile(t *testing.T) {
	assert.True(t, isBackupFile("backup-2025-03-15T10-30-45-123Z.json"))
	assert.True(t, isBackupFile("backup-before-restore-2025-03-15T10-30-45-123Z.json"))
	assert.False(t, isBackupFile("events.json"))
	assert.False(t, isBackupFile("backup-2025-03-15T10-30-45-123Z.txt"))
	assert.False(t, isBackupFile("snapshot-2025-03-15T10-30-45-123Z.json"))
}
