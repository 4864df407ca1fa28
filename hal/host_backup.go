//go:build !tinygo

package hal

import (
	"encoding/binary"
	"errors"
	"os"
	"sync"
)

const (
	hostBackupDefaultPath = "walkclock.backup"
	hostBackupWords       = 32
)

// errBackupRange reports a transfer larger than the backup register file.
var errBackupRange = errors.New("backup: word range exceeds register file")

// hostBackup persists the backup register file to disk so settings survive
// restarts the way the battery domain does on the board.
type hostBackup struct {
	mu   sync.Mutex
	path string
}

func newHostBackup() *hostBackup {
	path := os.Getenv("WALKCLOCK_BACKUP_PATH")
	if path == "" {
		path = hostBackupDefaultPath
	}
	return &hostBackup{path: path}
}

func (b *hostBackup) Read(words []uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(words) > hostBackupWords {
		return errBackupRange
	}
	buf, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			for i := range words {
				words[i] = 0
			}
			return nil
		}
		return err
	}
	for i := range words {
		words[i] = 0
		if off := i * 4; off+4 <= len(buf) {
			words[i] = binary.LittleEndian.Uint32(buf[off:])
		}
	}
	return nil
}

func (b *hostBackup) Write(words []uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(words) > hostBackupWords {
		return errBackupRange
	}
	buf := make([]byte, hostBackupWords*4)
	if old, err := os.ReadFile(b.path); err == nil {
		copy(buf, old)
	}
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return os.WriteFile(b.path, buf, 0o644)
}
