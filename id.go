package agent

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ID prefix constants for locally generated identifiers.
const (
	PrefixSession = "sess"
	PrefixChat    = "chat"
)

// generateID produces a unique identifier with the given prefix and embedded timestamp.
// Format: {prefix}_{YYYYMMDDTHHmmss}_{16 hex chars}  e.g. "sess_20260208T150405_a1b2c3d4e5f6a7b8"
func generateID(prefix string) string {
	ts := time.Now().UTC().Format("20060102T150405")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return prefix + "_" + ts + "_" + suffix
}
