package services

import (
	"fmt"
	"strings"
	"time"
)

// Backup filenames embed their creation instant: the RFC3339 UTC stamp
// with millisecond precision has its colons and period replaced by
// hyphens so it is safe on every filesystem. The encoding is reversible
// because the stamp is fixed-width: the date portion's hyphens are
// genuine, and within the time portion the first two hyphens stand for
// colons and the third for the millisecond period.
const (
	backupPrefix = "backup-"
	backupSuffix = ".json"

	// Pre-restore safety snapshots use a distinct prefix so a restore
	// never silently overwrites a regular backup.
	beforeRestorePrefix = "backup-before-restore-"

	stampLayout = "2006-01-02T15:04:05.000Z"
)

// encodeBackupStamp renders t as the filename-safe timestamp.
func encodeBackupStamp(t time.Time) string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(t.UTC().Format(stampLayout))
}

// decodeBackupStamp is the inverse of encodeBackupStamp.
func decodeBackupStamp(encoded string) (time.Time, error) {
	sep := strings.IndexByte(encoded, 'T')
	if sep < 0 {
		return time.Time{}, fmt.Errorf("malformed backup timestamp %q", encoded)
	}

	datePart := encoded[:sep]
	timePart := encoded[sep+1:]
	timePart = strings.Replace(timePart, "-", ":", 2)
	timePart = strings.Replace(timePart, "-", ".", 1)

	t, err := time.Parse(stampLayout, datePart+"T"+timePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed backup timestamp %q: %w", encoded, err)
	}

	return t, nil
}

// backupFilename builds the snapshot filename for t.
func backupFilename(t time.Time) string {
	return backupPrefix + encodeBackupStamp(t) + backupSuffix
}

// beforeRestoreFilename builds the safety-snapshot filename for t.
func beforeRestoreFilename(t time.Time) string {
	return beforeRestorePrefix + encodeBackupStamp(t) + backupSuffix
}

// stampFromFilename extracts the encoded timestamp portion of a backup
// filename. It does not validate that the portion decodes.
func stampFromFilename(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupSuffix)
}

// isBackupFile reports whether name matches the backup filename pattern.
// Safety snapshots share the prefix and are deliberately included; their
// stamp portion does not decode and they are listed with an invalid-date
// display, but they remain restorable.
func isBackupFile(name string) bool {
	return strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix)
}
