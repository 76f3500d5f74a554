package host

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Env is the per-invocation environment handed to contract operations.
// Reads see the invocation's own writes; nothing is visible outside the
// invocation until Runtime commits it.
type Env struct {
	store   *overlayStorage
	witness Witness
	logger  *zap.Logger
	notes   []Notification
}

func newEnv(base Storage, w Witness, logger *zap.Logger) *Env {
	return &Env{
		store:   newOverlayStorage(base),
		witness: w,
		logger:  logger,
	}
}

// Get reads a value from contract storage. Nil means the key is absent.
func (e *Env) Get(key []byte) []byte {
	return e.store.Get(key)
}

// Put buffers a write to contract storage.
func (e *Env) Put(key, value []byte) {
	e.store.Put(key, value)
}

// Delete buffers a removal from contract storage.
func (e *Env) Delete(key []byte) {
	e.store.Delete(key)
}

// CheckWitness reports whether the given account approved this
// invocation.
func (e *Env) CheckWitness(account []byte) bool {
	return e.witness.CheckWitness(account)
}

// Notify buffers a notification. The payload is JSON-encoded immediately
// so that the published data is a value snapshot taken at notify time.
func (e *Env) Notify(tag string, topics [][]byte, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		panic("notify: " + err.Error())
	}
	e.notes = append(e.notes, Notification{
		ID:     uuid.New(),
		Tag:    tag,
		Topics: topics,
		Data:   data,
	})
}

// Log writes an operation log line.
func (e *Env) Log(msg string, fields ...zap.Field) {
	e.logger.Info(msg, fields...)
}

// commit makes the buffered write set and the buffered notifications
// durable. With a combined committer both land in one step; otherwise
// storage is applied first and rolled back to its prior values if the
// publish fails, so a failed invocation leaves no observable mutation.
func (e *Env) commit(store Storage, events NotificationLog, committer InvocationCommitter) error {
	ops := e.store.ops()
	if len(ops) == 0 && len(e.notes) == 0 {
		return nil
	}

	if committer != nil {
		return committer.CommitInvocation(ops, e.notes)
	}

	prior := make([]StorageOp, len(ops))
	for i, op := range ops {
		prior[i] = StorageOp{Key: op.Key, Value: store.Get(op.Key)}
	}

	if err := applyOps(store, ops); err != nil {
		return err
	}
	if len(e.notes) > 0 {
		if err := events.Append(e.notes); err != nil {
			_ = applyOps(store, prior)
			return err
		}
	}
	return nil
}

func applyOps(store Storage, ops []StorageOp) error {
	if bs, ok := store.(BatchStorage); ok {
		return bs.PutBatch(ops)
	}
	for _, op := range ops {
		if op.Value == nil {
			store.Delete(op.Key)
		} else {
			store.Put(op.Key, op.Value)
		}
	}
	return nil
}

// overlayStorage buffers an invocation's writes over a base store.
// A nil map value marks a deletion.
type overlayStorage struct {
	base    Storage
	changes map[string][]byte
}

func newOverlayStorage(base Storage) *overlayStorage {
	return &overlayStorage{
		base:    base,
		changes: make(map[string][]byte),
	}
}

func (o *overlayStorage) Get(key []byte) []byte {
	if v, ok := o.changes[string(key)]; ok {
		return v
	}
	return o.base.Get(key)
}

func (o *overlayStorage) Put(key, value []byte) {
	cp := make([]byte, len(value))
	copy(cp, value)
	o.changes[string(key)] = cp
}

func (o *overlayStorage) Delete(key []byte) {
	o.changes[string(key)] = nil
}

// ops returns the buffered mutations in key order.
func (o *overlayStorage) ops() []StorageOp {
	if len(o.changes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(o.changes))
	for k := range o.changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ops := make([]StorageOp, 0, len(keys))
	for _, k := range keys {
		ops = append(ops, StorageOp{Key: []byte(k), Value: o.changes[k]})
	}
	return ops
}
