package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

// RepoHandle is an opaque open-repository handle. It is produced and
// consumed exclusively by the git gateway; nothing else inspects it.
type RepoHandle interface{}

// Signature is a cheap fingerprint of the repository metadata that can
// invalidate a cached session: the index file, HEAD, the loose-ref
// directory and packed-refs. It is compared on every lookup; a mismatch
// forces a session rebuild.
type Signature struct {
	IndexSize     int64
	IndexModTime  time.Time
	HeadModTime   time.Time
	RefsModTime   time.Time
	PackedSize    int64
	PackedModTime time.Time
}

// Session is the cached per-repository state. It is created by the git
// gateway, owned by the session repository, and read-only for everyone
// else; scan workers share one session concurrently and must not mutate it.
type Session struct {
	UUID      uuid.UUID
	Workdir   string
	GitDir    string
	Signature Signature
	Handle    RepoHandle
}
