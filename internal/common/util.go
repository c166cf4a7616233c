package common

// WipeByteArray overwrites the buffer with zeros. Used to drop password
// bytes from memory as soon as they have been consumed.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
