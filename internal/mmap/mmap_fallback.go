//go:build !unix && !windows

package mmap

// Anon allocates from the Go heap when the platform has no anonymous mappings.
func Anon(size int) ([]byte, func() error, error) {
	if err := checkSize(size); err != nil {
		return nil, nil, err
	}
	return make([]byte, size), func() error { return nil }, nil
}
