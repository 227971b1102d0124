package bracket

// HashPayload computes the rolling hash used for change detection: the
// classic 31-multiplier string hash with int32 wraparound, applied to the
// raw payload bytes. Hashing the raw text (not the parsed structure) means
// any byte-level change upstream triggers a rebuild, including fields the
// pipeline does not otherwise consume.
func HashPayload(payload []byte) int32 {
	var h int32
	for _, b := range payload {
		h = (h << 5) - h + int32(b)
	}
	return h
}

// ChangeDetector gates the pipeline on payload changes. It stores the hash
// of the last payload it saw; the first check always reports changed.
type ChangeDetector struct {
	last int32
	seen bool
}

// Check reports whether the payload differs from the last one observed and
// returns its hash. The stored hash is updated only when a new value is
// computed, so repeated identical payloads stay a no-op.
func (d *ChangeDetector) Check(payload []byte) (changed bool, hash int32) {
	hash = HashPayload(payload)
	if d.seen && hash == d.last {
		return false, hash
	}
	d.last = hash
	d.seen = true
	return true, hash
}

// Reset clears the stored hash so the next check reports changed.
func (d *ChangeDetector) Reset() {
	d.last = 0
	d.seen = false
}
