package testutil

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/punchcard/internal/repository"
)

// FailOnNthPutKV wraps a KVStore and injects Err on the Nth Put call
// (counted from 1). Later calls pass through again.
type FailOnNthPutKV struct {
	repository.KVStore
	FailOn int32
	Err    error

	calls atomic.Int32
}

func (f *FailOnNthPutKV) Put(ctx context.Context, entries ...repository.Entry) error {
	if f.calls.Add(1) == f.FailOn {
		if f.Err != nil {
			return f.Err
		}
		return fmt.Errorf("injected put failure (call %d)", f.FailOn)
	}
	return f.KVStore.Put(ctx, entries...)
}
