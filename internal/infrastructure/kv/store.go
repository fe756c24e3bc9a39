// internal/infrastructure/kv/store.go
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist
var ErrNotFound = errors.New("kv: key not found")

// ErrConflict is returned by Commit when a Create op targets an existing key.
// Nothing in the batch is applied.
var ErrConflict = errors.New("kv: key already exists")

// OpKind identifies a write inside a Commit batch
type OpKind int

const (
	OpSet OpKind = iota
	OpDelete
	OpPush
	OpCreate
)

// Op is a single write applied as part of Commit
type Op struct {
	Kind  OpKind
	Key   string
	Value []byte
	TTL   time.Duration
}

// Set returns an op storing value under key (TTL 0 means no expiry)
func Set(key string, value []byte, ttl time.Duration) Op {
	return Op{Kind: OpSet, Key: key, Value: value, TTL: ttl}
}

// Create returns an op storing value under key only if key is absent.
// If it is present the whole Commit fails with ErrConflict.
func Create(key string, value []byte, ttl time.Duration) Op {
	return Op{Kind: OpCreate, Key: key, Value: value, TTL: ttl}
}

// Delete returns an op removing key
func Delete(key string) Op {
	return Op{Kind: OpDelete, Key: key}
}

// Push returns an op prepending value to the list stored under key
func Push(key string, value []byte) Op {
	return Op{Kind: OpPush, Key: key, Value: value}
}

// Store persists session state. Commit applies all ops so that either
// every op is visible or none is.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context, key string) ([][]byte, error)
	Commit(ctx context.Context, ops ...Op) error
	Ping(ctx context.Context) error
}
