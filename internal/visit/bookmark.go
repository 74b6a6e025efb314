package visit

import (
	"github.com/Iron-Ham/cogniload/internal/store"
)

// Bookmark records the latest total load. The first bookmark ever written
// also becomes the baseline, so the first diff a user sees is against it
// rather than against zero.
func Bookmark(kv store.KV, total float64) {
	store.SetFloat(kv, store.KeyCurrentTotalLoad, total)
	if _, ok := kv.Get(store.KeyLastTotalLoad); !ok {
		store.SetFloat(kv, store.KeyLastTotalLoad, total)
	}
}

// Rotate makes the current bookmark the baseline for the next day's diff.
// Hosts call it after showing a new-day result.
func Rotate(kv store.KV) {
	if v, ok := kv.Get(store.KeyCurrentTotalLoad); ok {
		kv.Set(store.KeyLastTotalLoad, v)
	}
}
