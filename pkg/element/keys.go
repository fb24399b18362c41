package element

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Key is the stable 64-bit identity of one element across ticks. Two
// elements are the same element for diff purposes iff their keys are equal.
//
// The default derivation hashes (parent key, position among siblings,
// declared type tag). An explicit identity set with Identify replaces the
// position, so a node keeps its key when its siblings are reordered or
// inserted. Dynamic lists need this for correct diffing.
type Key uint64

// String renders the key in hex, the form used in element paths and the
// inspect snapshot.
func (k Key) String() string {
	return strconv.FormatUint(uint64(k), 16)
}

const (
	slotPositional byte = 0
	slotIdentity   byte = 1
)

// deriveKey computes a child key from its parent key, its slot (position
// or identity hash), and its declared type tag. The marker byte keeps a
// positional slot and an identity that happens to hash to the same value
// from colliding.
func deriveKey(parent Key, marker byte, slot uint64, tag reflect.Type) Key {
	var buf [17]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(parent))
	buf[8] = marker
	binary.LittleEndian.PutUint64(buf[9:17], slot)

	d := xxhash.New()
	d.Write(buf[:])
	d.WriteString(tag.String())
	return Key(d.Sum64())
}

// hashIdentity folds an arbitrary identity hint into 64 bits. Fast paths
// cover the common hint types; everything else goes through its printed
// form, which is stable for comparable values.
func hashIdentity(id any) uint64 {
	switch v := id.(type) {
	case string:
		return xxhash.Sum64String(v)
	case int:
		return uint64(v)
	case int64:
		return uint64(v)
	case uint64:
		return v
	case uint32:
		return uint64(v)
	case Key:
		return uint64(v)
	default:
		return xxhash.Sum64String(fmt.Sprint(id))
	}
}

// typeLabel is the human-readable form of a type tag, used in element
// paths and observer events.
func typeLabel(tag reflect.Type) string {
	return tag.String()
}

// childPath extends a parent's element path with one segment naming the
// child by type and key. The type name is stripped of generics and package
// qualifier.
func childPath(parent string, tag reflect.Type, k Key) string {
	name := tag.String()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return parent + "/" + name + "_" + k.String()
}

// stamper threads the key-assignment pass: it owns the flat arena being
// filled for this tick and the logger used to report sibling collisions.
type stamper struct {
	arena *treeArena
	log   *slog.Logger
}

// push records one stamped node in the arena and returns its index, used
// as the parent index for its children.
func (st *stamper) push(parent int32, k Key, tag reflect.Type, path string) int32 {
	if st.arena == nil {
		return -1
	}
	return st.arena.push(parent, k, typeLabel(tag), path)
}
