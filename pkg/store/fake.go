package store

import "fmt"

// FakeByteStore is an in-memory ByteStore for tests and simulation
// mode. FailAfter, when non-negative, makes every write past that
// count fail, which is how torn-write behavior is exercised.
type FakeByteStore struct {
	Data      []byte
	FailAfter int
	writes    int
}

func NewFake(size int) *FakeByteStore {
	data := make([]byte, size)
	for i := range data {
		data[i] = erased
	}
	return &FakeByteStore{Data: data, FailAfter: -1}
}

func (f *FakeByteStore) ReadByte(addr int) (byte, error) {
	if addr < 0 || addr >= len(f.Data) {
		return 0, fmt.Errorf("read address %d out of range", addr)
	}
	return f.Data[addr], nil
}

func (f *FakeByteStore) WriteByte(addr int, b byte) error {
	if addr < 0 || addr >= len(f.Data) {
		return fmt.Errorf("write address %d out of range", addr)
	}
	if f.FailAfter >= 0 && f.writes >= f.FailAfter {
		return fmt.Errorf("write address %d: storage fault", addr)
	}
	f.writes++
	f.Data[addr] = b
	return nil
}
