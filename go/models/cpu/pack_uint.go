package cpu

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// bus access widths in bytes
const (
	SizeByte = 1
	SizeHalf = 2
	SizeWord = 4
)

// Order maps a big-endian flag to a byte order.
func Order(bigEndian bool) binary.ByteOrder {
	if bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func checkSize(size int) error {
	switch size {
	case SizeByte, SizeHalf, SizeWord:
		return nil
	}
	return errors.Errorf("unsupported access size: %d", size)
}

// PackUint encodes the low size bytes of n as one bus access.
func PackUint(order binary.ByteOrder, size int, n uint32) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	buf := make([]byte, SizeWord)
	order.PutUint32(buf, n)
	if order == binary.BigEndian {
		return buf[SizeWord-size:], nil
	}
	return buf[:size], nil
}

// UnpackUint decodes a whole bus access; the size is len(buf).
func UnpackUint(order binary.ByteOrder, buf []byte) (uint32, error) {
	if err := checkSize(len(buf)); err != nil {
		return 0, err
	}
	var n uint32
	for i := range buf {
		b := buf[i]
		if order != binary.BigEndian {
			b = buf[len(buf)-1-i]
		}
		n = n<<8 | uint32(b)
	}
	return n, nil
}
