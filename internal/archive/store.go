package archive

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"

	"github.com/rzbill/flexbuf/internal/linering"
	pebblestore "github.com/rzbill/flexbuf/internal/storage/pebble"
)

var ErrCorrupt = errors.New("archive: corrupt line record")

// Entry is one archived line read back from the store.
type Entry struct {
	ID   uint32 `json:"id"`
	Data []byte `json:"data"`
}

// Store reads and writes archived lines in Pebble.
type Store struct {
	db *pebblestore.DB
}

// NewStore wraps db. The caller owns the database lifecycle.
func NewStore(db *pebblestore.DB) *Store {
	return &Store{db: db}
}

// PutBatch persists the lines as one atomic batch.
func (s *Store) PutBatch(ctx context.Context, lines []linering.Line[byte]) error {
	if len(lines) == 0 {
		return nil
	}
	b := s.db.NewBatch()
	defer b.Close()
	for _, ln := range lines {
		if err := b.Set(KeyLine(ln.ID()), EncodeLine(ln.Data()), nil); err != nil {
			return err
		}
	}
	return s.db.CommitBatch(ctx, b)
}

// Get returns one archived line's data, ErrNotFound if absent.
func (s *Store) Get(id uint32) ([]byte, error) {
	val, err := s.db.Get(KeyLine(id))
	if err != nil {
		return nil, err
	}
	data, ok := DecodeLine(val)
	if !ok {
		return nil, ErrCorrupt
	}
	return data, nil
}

// Scan returns up to limit archived lines with id >= fromID, in id order.
// limit <= 0 means no limit. Corrupt records are skipped.
func (s *Store) Scan(fromID uint32, limit int) ([]Entry, error) {
	low := KeyLine(fromID)
	hi := append(KeyLine(^uint32(0)), 0x00)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: hi})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []Entry
	for ok := iter.First(); ok && (limit <= 0 || len(out) < limit); ok = iter.Next() {
		data, okDec := DecodeLine(iter.Value())
		if !okDec {
			continue
		}
		out = append(out, Entry{ID: lineID(iter.Key()), Data: data})
	}
	return out, nil
}
