// Package identity assigns stable identifiers to widget declarations so that
// a declaration in one frame can be matched to the node it produced in the
// previous frame.
//
// An [Identity] is a (slot key, kind) pair. The slot key comes from one of
// two sources:
//
//   - Generated: the builder's call site (file and line) combined with an
//     occurrence ordinal. The ordinal counts how many times the same call
//     site has fired for the same kind inside the current container during
//     the current build pass, so a loop emitting N buttons yields N distinct
//     identities that are reproduced exactly on the next frame as long as
//     the call order is stable.
//   - Custom: an application-supplied integer, used verbatim.
//
// Custom keys are the application's responsibility. Two declarations under
// the same parent that reuse a custom key with the same kind resolve to one
// node and share its state. With different kinds the identities differ, so
// each declaration gets its own node. Neither case is reported.
package identity

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"runtime"
)

// Identity identifies one widget declaration within its parent container.
// It is comparable and used directly as a map key.
type Identity struct {
	Key    uint64
	Kind   Kind
	Custom bool
}

func (id Identity) String() string {
	if id.Custom {
		return fmt.Sprintf("%s#%d", id.Kind, id.Key)
	}
	return fmt.Sprintf("%s@%016x", id.Kind, id.Key)
}

// Location seeds an identity. Use [Here] at the builder call site, or
// [Custom] for explicit keys.
type Location struct {
	File string
	Line int

	custom bool
	key    uint64
}

// Here returns the location of its caller.
func Here() Location {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return Location{File: "unknown"}
	}
	return Location{File: file, Line: line}
}

// At returns an explicit call-site location. Useful when a helper builds
// widgets on behalf of its own caller.
func At(file string, line int) Location {
	return Location{File: file, Line: line}
}

// Caller returns the location skip frames above the caller of Caller,
// so Caller(0) is equivalent to Here().
func Caller(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "unknown"}
	}
	return Location{File: file, Line: line}
}

// Custom returns a location carrying an application-supplied key. The key
// is used verbatim: two declarations with the same key and kind under one
// parent resolve to the same node.
func Custom(key uint64) Location {
	return Location{custom: true, key: key}
}

// IsCustom reports whether the location carries an explicit key.
func (l Location) IsCustom() bool {
	return l.custom
}

func (l Location) String() string {
	if l.custom {
		return fmt.Sprintf("custom(%d)", l.key)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Make builds the identity for one declaration. For generated locations the
// counter supplies the occurrence ordinal and is advanced; for custom
// locations it is not consulted. Make never fails.
func Make(loc Location, kind Kind, counter *Counter) Identity {
	if loc.custom {
		return Identity{Key: loc.key, Kind: kind, Custom: true}
	}
	var ordinal uint32
	if counter != nil {
		ordinal = counter.next(site{file: loc.File, line: loc.Line, kind: kind})
	}
	return Identity{Key: hashSite(loc.File, loc.Line, ordinal), Kind: kind}
}

func hashSite(file string, line int, ordinal uint32) uint64 {
	h := fnv.New64a()
	h.Write([]byte(file))
	var buf [12]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(line))
	binary.LittleEndian.PutUint32(buf[8:], ordinal)
	h.Write(buf[:])
	return h.Sum64()
}

type site struct {
	file string
	line int
	kind Kind
}

// Counter hands out occurrence ordinals per (call site, kind). Each
// container owns one and resets it at the start of its build pass.
// The zero value is ready to use.
type Counter struct {
	seen map[site]uint32
}

func (c *Counter) next(s site) uint32 {
	if c.seen == nil {
		c.seen = make(map[site]uint32)
	}
	n := c.seen[s]
	c.seen[s] = n + 1
	return n
}

// Reset forgets all ordinals.
func (c *Counter) Reset() {
	clear(c.seen)
}
