package codec

import (
	"errors"
	"testing"
)

func TestMsgpackPrefixes(t *testing.T) {
	everyPrefixIncomplete[doc](t, Msgpack[doc]{}, sample)
}

func TestMsgpackEmpty(t *testing.T) {
	if _, err := (Msgpack[doc]{}).Decode(nil); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
}
