package chunkcache

// DefaultChunkSize stays well under Redis' 512MB string ceiling and keeps each
// round-trip small enough not to stall other clients on the connection.
const DefaultChunkSize = 120000

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
