// Package pebblestore wraps a Pebble database with the small surface the
// archive layer needs: keyed point ops, atomic batches, range iteration,
// and a configurable WAL fsync policy.
//
// The live ring never touches disk; only evicted lines flow through this
// package.
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: dir,
//	    Fsync:   pebblestore.FsyncModeInterval,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	b := db.NewBatch()
//	_ = b.Set(key, val, nil)
//	_ = db.CommitBatch(context.Background(), b)
//	b.Close()
package pebblestore
