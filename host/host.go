package host

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Storage is the durable keyed store backing all persisted contract state.
// Keys are opaque composite byte strings. Get returns nil for an absent
// key; an empty stored value reads back as an empty non-nil slice.
//
// No cross-key atomicity is assumed from the interface itself; atomicity
// of an invocation is provided by Runtime, which buffers writes and
// applies them in a single batch where the backend supports it.
type Storage interface {
	Get(key []byte) []byte
	Put(key, value []byte)
	Delete(key []byte)
}

// StorageOp is a single buffered storage mutation. A nil Value means
// deletion.
type StorageOp struct {
	Key   []byte
	Value []byte
}

// BatchStorage is implemented by backends that can apply a whole
// invocation's write set atomically.
type BatchStorage interface {
	Storage
	PutBatch(ops []StorageOp) error
}

// Witness is the authorization facade. One Witness value describes who
// approved the current invocation; CheckWitness reports whether the
// claimed account is among them.
type Witness interface {
	CheckWitness(account []byte) bool
}

// Notification is one entry of the append-only notification log. Tag
// names the event, Topics carries the topic-level key fields (issuer,
// token) and Data is the JSON-encoded payload. Seq is assigned by the
// log on append and is strictly increasing.
type Notification struct {
	ID     uuid.UUID       `json:"id"`
	Seq    uint64          `json:"seq"`
	Tag    string          `json:"tag"`
	Topics [][]byte        `json:"topics"`
	Data   json.RawMessage `json:"data"`
}

// NotificationLog is the append-only sink consumed by off-chain
// observers. Append is called at most once per successful invocation with
// the invocation's notifications in publish order.
type NotificationLog interface {
	Append(ns []Notification) error
}

// InvocationCommitter is implemented by backends that serve as both the
// Storage and the NotificationLog of a Runtime and can make an entire
// invocation durable in one step. When the two facades are backed by the
// same such value, Runtime commits through it, so a failure leaves
// neither the writes nor the notifications observable.
type InvocationCommitter interface {
	CommitInvocation(ops []StorageOp, ns []Notification) error
}

// AbortError is returned by Runtime.Invoke when the invocation panicked.
// No writes or notifications of an aborted invocation take effect.
type AbortError struct {
	Reason string
}

func (e *AbortError) Error() string {
	return "invocation aborted: " + e.Reason
}
