//go:build !tinygo

package hal

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestBackupRoundTrip(t *testing.T) {
	b := &hostBackup{path: filepath.Join(t.TempDir(), "backup")}

	in := []uint32{2, 0xDEADBEEF, 42, 0}
	if err := b.Write(in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := make([]uint32, len(in))
	if err := b.Read(out); err != nil {
		t.Fatalf("Read: %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("word %d = %#x, want %#x", i, out[i], in[i])
		}
	}
}

func TestBackupMissingFileReadsZero(t *testing.T) {
	b := &hostBackup{path: filepath.Join(t.TempDir(), "nonexistent")}
	out := []uint32{7, 7, 7}
	if err := b.Read(out); err != nil {
		t.Fatalf("Read: %v", err)
	}
	for i, w := range out {
		if w != 0 {
			t.Errorf("word %d = %#x, want 0", i, w)
		}
	}
}

func TestBackupPartialWriteKeepsOtherWords(t *testing.T) {
	b := &hostBackup{path: filepath.Join(t.TempDir(), "backup")}
	if err := b.Write([]uint32{1, 2, 3, 4}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := b.Write([]uint32{9}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := make([]uint32, 4)
	if err := b.Read(out); err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []uint32{9, 2, 3, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("word %d = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestBackupRejectsOversizedRange(t *testing.T) {
	b := &hostBackup{path: filepath.Join(t.TempDir(), "backup")}
	big := make([]uint32, hostBackupWords+1)

	if err := b.Write(big); !errors.Is(err, errBackupRange) {
		t.Errorf("Write error = %v, want %v", err, errBackupRange)
	}
	if err := b.Read(big); !errors.Is(err, errBackupRange) {
		t.Errorf("Read error = %v, want %v", err, errBackupRange)
	}
}
