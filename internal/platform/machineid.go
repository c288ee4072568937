package platform

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
)

var (
	// ErrEmptyMachineID is returned when the OS reports a blank identifier.
	ErrEmptyMachineID = errors.New("machine id is empty")

	// ErrUnstableMachineID is returned when the only identifier available is
	// the per-boot ID, which changes on every restart.
	ErrUnstableMachineID = errors.New("machine id unavailable: only the per-boot id is readable")
)

// bootIDPath is the Linux per-boot identifier gopsutil falls back to when
// neither the DMI product UUID nor /etc/machine-id can be read.
const bootIDPath = "/proc/sys/kernel/random/boot_id"

// Per-boot detection, replaced in tests.
var (
	checkBootID = runtime.GOOS == "linux"
	readBootID  = func() ([]byte, error) { return os.ReadFile(bootIDPath) }
)

// MachineID returns the host identifier reported by gopsutil, optionally
// salted. The first successful result is kept for the life of the Platform;
// failures are not cached.
func (p *Platform) MachineID(ctx context.Context) (string, error) {
	p.idMu.Lock()
	defer p.idMu.Unlock()

	if p.machineID != "" {
		return p.machineID, nil
	}

	raw, err := hostIDFunc(ctx)
	if err != nil {
		return "", fmt.Errorf("read machine id: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyMachineID
	}
	if isBootID(raw) {
		return "", ErrUnstableMachineID
	}

	p.machineID = saltID(p.salt, raw)
	return p.machineID, nil
}

// saltID returns raw unchanged when salt is empty, otherwise the hex SHA-256
// of "salt:raw".
func saltID(salt, raw string) string {
	if salt == "" {
		return raw
	}
	sum := sha256.Sum256([]byte(salt + ":" + raw))
	return hex.EncodeToString(sum[:])
}

// isBootID reports whether raw is the current per-boot identifier.
func isBootID(raw string) bool {
	if !checkBootID {
		return false
	}
	data, err := readBootID()
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(string(data)), raw)
}
