package server

import "time"

// Bracket snapshots are small JSON bodies served from memory; the read
// window only has to cover request headers, while writes get headroom for
// slow consumers pulling a full multi-view snapshot list.
const (
	readTimeout  = 5 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 90 * time.Second
)

// shutdownTimeout remains a var for tests to override. It bounds the whole
// shutdown sequence: metrics, pollers, then the HTTP listener.
var shutdownTimeout = 10 * time.Second
