package common

import "testing"

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestRemoteError_Message(t *testing.T) {
	e := &RemoteError{Status: 400, Detail: "Cannot deactivate your own account"}
	if e.Error() != "Cannot deactivate your own account" {
		t.Fatalf("unexpected message: %q", e.Error())
	}

	e = &RemoteError{Status: 502}
	if e.Error() != "server rejected the request (status 502)" {
		t.Fatalf("unexpected fallback message: %q", e.Error())
	}
}
