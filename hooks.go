package chunkcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// A Set needed more than one store operation.
	ChunkedWrite(storageKey string, chunks, size int)

	// A Set failed after issuing `written` of `total` operations; the key
	// now holds a prefix of the new value.
	PartialWrite(storageKey string, written, total int, err error)

	// A read hit bytes that are not a prefix of any valid encoding.
	MalformedValue(storageKey string, err error)

	// A read ran out of stored bytes before the value was complete.
	TruncatedValue(storageKey string, read int)

	// MSet wrote a value larger than one chunk in a single operation.
	OversizedBulkValue(storageKey string, size int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) ChunkedWrite(string, int, int)        {}
func (NopHooks) PartialWrite(string, int, int, error) {}
func (NopHooks) MalformedValue(string, error)         {}
func (NopHooks) TruncatedValue(string, int)           {}
func (NopHooks) OversizedBulkValue(string, int)       {}
