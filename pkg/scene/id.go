package scene

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// NodeID is a content-addressed identifier for scene nodes: the xxhash of
// the node's path ("figure/wheel", "place/wheel", ...) in hex.
type NodeID string

// ZeroID is the empty NodeID.
const ZeroID NodeID = ""

// NewNodeID derives the ID for a node path. The same path always gives the
// same ID, so re-evaluating a script keeps node identities stable.
func NewNodeID(path string) NodeID {
	return NodeID(fmt.Sprintf("%016x", xxhash.Sum64String(path)))
}

// AnonymousID returns a fresh ID for an unnamed node of the given kind.
func AnonymousID(kind string) NodeID {
	return NewNodeID(kind + "/" + uuid.NewString())
}

// IsZero reports whether id is unset.
func (id NodeID) IsZero() bool { return id == ZeroID }

// Short returns the first eight hex digits, for messages.
func (id NodeID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

func (id NodeID) String() string { return string(id) }
