// Package idgen generates prefixed opaque identifiers for persisted rows.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Row identifier prefixes.
const (
	UserPrefix       = "usr"
	CredentialPrefix = "pwd"
)

// New returns an identifier of the form "<prefix>-<uuid>" with the uuid's
// dashes stripped, e.g. "pwd-9f2b4c...".
func New(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
