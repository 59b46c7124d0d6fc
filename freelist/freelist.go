// Package freelist implements the doubly-linked LIFO free list threaded
// through free chunks' payloads. Order carries no semantic meaning — only
// set membership does — but insertion is always at the head, so the most
// recently freed chunk is the first one tried by a first-fit search.
package freelist

import (
	"github.com/pavanmanishd/galloc/chunk"
)

// List is the free-list head for one arena. The zero value is an empty
// list.
type List struct {
	Head uintptr // header address of the most recently linked free chunk, 0 if empty
}

// fd and bk live at payload offsets 0 and WordSize respectively, exactly as
// spec'd: "at payload offsets 0 and 8 lie fd and bk pointers".
func fdAddr(hdrAddr uintptr) uintptr { return chunk.PayloadOf(hdrAddr) }
func bkAddr(hdrAddr uintptr) uintptr { return chunk.PayloadOf(hdrAddr) + chunk.WordSize }

// PushFront links hdrAddr at the head of the list. hdrAddr must already be
// a free chunk (FREE bit set) before this is called — PushFront only wires
// the intrusive links, it never touches the header.
func (l *List) PushFront(hdrAddr uintptr) {
	chunk.WriteWord(fdAddr(hdrAddr), l.Head)
	chunk.WriteWord(bkAddr(hdrAddr), 0)
	if l.Head != 0 {
		chunk.WriteWord(bkAddr(l.Head), hdrAddr)
	}
	l.Head = hdrAddr
}

// Remove unlinks hdrAddr from the list. hdrAddr must currently be a member.
func (l *List) Remove(hdrAddr uintptr) {
	next := chunk.ReadWord(fdAddr(hdrAddr))
	prev := chunk.ReadWord(bkAddr(hdrAddr))
	if prev != 0 {
		chunk.WriteWord(fdAddr(prev), next)
	} else {
		l.Head = next
	}
	if next != 0 {
		chunk.WriteWord(bkAddr(next), prev)
	}
}

// FirstFit walks the list from the head and returns the header address of
// the first chunk whose size is at least need.
func (l *List) FirstFit(need uintptr) (hdrAddr uintptr, ok bool) {
	for cur := l.Head; cur != 0; cur = chunk.ReadWord(fdAddr(cur)) {
		if chunk.SizeOf(cur) >= need {
			return cur, true
		}
	}
	return 0, false
}

// Each calls f with the header address of every chunk currently reachable
// from the head, head first. Used by invariant checks and metrics; not on
// any allocate/release hot path.
func (l *List) Each(f func(hdrAddr uintptr)) {
	for cur := l.Head; cur != 0; cur = chunk.ReadWord(fdAddr(cur)) {
		f(cur)
	}
}

// Len returns the number of chunks currently linked. O(n); for tests and
// metrics only.
func (l *List) Len() int {
	n := 0
	l.Each(func(uintptr) { n++ })
	return n
}
