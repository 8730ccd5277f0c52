package abi

import (
	"runtime"
	"unsafe"
)

// maxTerminated bounds walks over sentinel-terminated host arrays.
const maxTerminated = 1 << 16

// GoString copies a NUL-terminated string. A nil pointer yields "".
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// Terminated returns the elements of a C array up to, not including, the
// first element for which end reports true.
func Terminated[T any](p *T, end func(*T) bool) []T {
	if p == nil {
		return nil
	}
	size := unsafe.Sizeof(*p)
	var out []T
	for i := 0; i < maxTerminated; i++ {
		e := (*T)(unsafe.Add(unsafe.Pointer(p), uintptr(i)*size))
		if end(e) {
			break
		}
		out = append(out, *e)
	}
	return out
}

// Pins keeps Go memory reachable from C payloads in place until Unpin.
// The zero value is ready to use.
type Pins struct {
	pinner runtime.Pinner
	count  int
}

// CString returns a pinned NUL-terminated copy of s.
func (p *Pins) CString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	p.Pin(&b[0])
	return &b[0]
}

// Pin pins the object ptr points into.
func (p *Pins) Pin(ptr any) {
	p.pinner.Pin(ptr)
	p.count++
}

// Unpin releases everything pinned so far.
func (p *Pins) Unpin() {
	p.pinner.Unpin()
	p.count = 0
}

// Len returns the number of objects pinned since the last Unpin.
func (p *Pins) Len() int {
	return p.count
}
