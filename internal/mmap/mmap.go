// Package mmap provides platform-specific helpers for obtaining anonymous,
// page-aligned memory outside the Go heap.
package mmap

import "fmt"

// checkSize rejects sizes no platform can map.
func checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("mmap: invalid mapping size %d", size)
	}
	return nil
}
