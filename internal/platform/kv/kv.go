package kv

import (
	"context"
	"errors"
	"strings"
)

// Store is the key-value storage boundary. Implementations must provide
// point reads/writes, prefix iteration in ascending key order, and an
// atomic multi-key commit: all ops in a commit become visible together or
// not at all. Readers may observe pre- or post-commit state, never a torn
// mix of the committed keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Entry, error)
	Commit(ctx context.Context, ops []Op) error
}

// Entry is one key-value pair returned by a prefix scan.
type Entry struct {
	Key   string
	Value []byte
}

// Op is a single mutation inside an atomic commit.
type Op struct {
	Key    string
	Value  []byte
	Delete bool
}

func SetOp(key string, value []byte) Op {
	return Op{Key: key, Value: value}
}

func DeleteOp(key string) Op {
	return Op{Key: key, Delete: true}
}

// ErrConflict reports a commit rejected by the underlying store.
var ErrConflict = errors.New("kv commit conflict")

// Key joins namespace parts into a store key, e.g. Key("pledges", id).
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}
