// Copyright 2026 The Keepfs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package badgerstore implements a persistent collection store kept in
// a Badger key-value database. Each collection is held as a CBOR
// record whose manifest text is optionally zstd-compressed.
package badgerstore // import "keepfs.io/store/badgerstore"

import (
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"keepfs.io/errors"
	"keepfs.io/keep"
	"keepfs.io/log"
	"keepfs.io/store"
)

// keyPrefix separates collection records from anything else that may
// share the database.
const keyPrefix = "collection/"

// record is the stored form of a collection.
type record struct {
	Text       []byte `cbor:"1,keyasint"`
	Compressed bool   `cbor:"2,keyasint"`
	Size       int    `cbor:"3,keyasint"`
	Modified   int64  `cbor:"4,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("badgerstore: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("badgerstore: CBOR decoder initialization failed: " + err.Error())
	}
}

// Store is a keep.CollectionStore backed by Badger.
type Store struct {
	db       *badger.DB
	compress bool

	// EncodeAll and DecodeAll may be called concurrently.
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

var _ keep.CollectionStore = (*Store)(nil)

// New opens a Store. The options are
//
//	dir=<path>     directory holding the database; required unless inmemory is set
//	inmemory=true  keep the database in memory only
//	compress=false store manifest text uncompressed
func New(options ...string) (keep.CollectionStore, error) {
	const op = "store/badgerstore.New"
	opts, err := store.ParseOptions(op, options, "dir", "inmemory", "compress")
	if err != nil {
		return nil, err
	}
	inMemory, err := opts.Bool(op, "inmemory", false)
	if err != nil {
		return nil, err
	}
	compress, err := opts.Bool(op, "compress", true)
	if err != nil {
		return nil, err
	}
	dir := opts["dir"]
	if dir == "" && !inMemory {
		return nil, errors.E(op, errors.Invalid, errors.Str("dir option required"))
	}
	if inMemory {
		dir = ""
	}

	bopts := badger.DefaultOptions(dir).WithInMemory(inMemory)
	bopts.Logger = badgerLogger{}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, errors.E(op, errors.IO, err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, errors.E(op, err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, errors.E(op, err)
	}
	log.Debug.Printf("store/badgerstore: opened %q (inmemory=%t, compress=%t)", dir, inMemory, compress)
	return &Store{
		db:       db,
		compress: compress,
		encoder:  enc,
		decoder:  dec,
	}, nil
}

func key(id keep.CollectionID) []byte {
	return []byte(keyPrefix + string(id))
}

// Get implements keep.CollectionStore.
func (s *Store) Get(id keep.CollectionID) (string, error) {
	const op = "store/badgerstore.Get"
	if err := store.CheckID(op, id); err != nil {
		return "", err
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return "", errors.E(op, errors.NotExist, errors.Errorf("no such collection: %s", id))
	}
	if err != nil {
		return "", errors.E(op, errors.IO, err)
	}
	text, err := s.decode(data)
	if err != nil {
		return "", errors.E(op, errors.Errorf("collection %s: %v", id, err))
	}
	return text, nil
}

// Put implements keep.CollectionStore.
func (s *Store) Put(id keep.CollectionID, text string) error {
	const op = "store/badgerstore.Put"
	if err := store.CheckID(op, id); err != nil {
		return err
	}
	data, err := s.encode(text)
	if err != nil {
		return errors.E(op, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(id), data)
	})
	if err != nil {
		return errors.E(op, errors.IO, err)
	}
	return nil
}

// Delete implements keep.CollectionStore.
func (s *Store) Delete(id keep.CollectionID) error {
	const op = "store/badgerstore.Delete"
	if err := store.CheckID(op, id); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(id)); err != nil {
			return err
		}
		return txn.Delete(key(id))
	})
	if err == badger.ErrKeyNotFound {
		return errors.E(op, errors.NotExist, errors.Errorf("no such collection: %s", id))
	}
	if err != nil {
		return errors.E(op, errors.IO, err)
	}
	return nil
}

// List implements keep.CollectionStore. Badger iterates keys in byte
// order, so the ids come back sorted.
func (s *Store) List() ([]keep.CollectionID, error) {
	const op = "store/badgerstore.List"
	var ids []keep.CollectionID
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			k := it.Item().Key()
			ids = append(ids, keep.CollectionID(k[len(keyPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, errors.E(op, errors.IO, err)
	}
	return ids, nil
}

// Close implements keep.CollectionStore.
func (s *Store) Close() error {
	const op = "store/badgerstore.Close"
	s.encoder.Close()
	s.decoder.Close()
	if err := s.db.Close(); err != nil {
		return errors.E(op, errors.IO, err)
	}
	return nil
}

// encode returns the stored form of text.
func (s *Store) encode(text string) ([]byte, error) {
	r := record{
		Text:     []byte(text),
		Size:     len(text),
		Modified: time.Now().Unix(),
	}
	if s.compress {
		r.Text = s.encoder.EncodeAll(r.Text, nil)
		r.Compressed = true
	}
	return encMode.Marshal(&r)
}

// decode returns the manifest text held in a stored record.
func (s *Store) decode(data []byte) (string, error) {
	var r record
	if err := decMode.Unmarshal(data, &r); err != nil {
		return "", errors.E(errors.Invalid, err)
	}
	text := r.Text
	if r.Compressed {
		var err error
		text, err = s.decoder.DecodeAll(r.Text, nil)
		if err != nil {
			return "", errors.E(errors.Invalid, err)
		}
	}
	if len(text) != r.Size {
		return "", errors.E(errors.Invalid, errors.Errorf("size %d, record says %d", len(text), r.Size))
	}
	return string(text), nil
}
