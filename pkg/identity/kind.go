package identity

import (
	"fmt"
	"sync"
)

// Kind is the type tag of a widget payload. Two declarations at the same
// slot with different kinds never match.
type Kind uint32

// KindPlaceholder tags the payload a node carries between allocation and
// the installation of its real payload.
const KindPlaceholder Kind = 0

var (
	kindMu    sync.RWMutex
	kindNames = []string{"placeholder"}
	kindIndex = map[string]Kind{"placeholder": KindPlaceholder}
)

// RegisterKind returns the kind registered under name, allocating a new one
// on first use. Widget packages call it from package-level var blocks.
func RegisterKind(name string) Kind {
	kindMu.Lock()
	defer kindMu.Unlock()
	if k, ok := kindIndex[name]; ok {
		return k
	}
	k := Kind(len(kindNames))
	kindNames = append(kindNames, name)
	kindIndex[name] = k
	return k
}

// LookupKind returns the kind registered under name.
func LookupKind(name string) (Kind, bool) {
	kindMu.RLock()
	defer kindMu.RUnlock()
	k, ok := kindIndex[name]
	return k, ok
}

func (k Kind) String() string {
	kindMu.RLock()
	defer kindMu.RUnlock()
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}
