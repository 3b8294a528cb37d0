package blockchain

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"

	"github.com/archivenode/starknet-gateway/core"
	"github.com/archivenode/starknet-gateway/core/felt"
	"github.com/archivenode/starknet-gateway/db"
)

// Store is the Pebble-backed Reader implementation: a single embedded KV
// engine holding every bucket defined in package db, keyed by a one-byte
// bucket prefix. It is read-mostly and safe for concurrent use — Pebble
// itself serializes writes and allows lock-free concurrent reads.
type Store struct {
	pdb *pebble.DB
}

var _ Reader = (*Store)(nil)

func OpenStore(dir string) (*Store, error) {
	pdb, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "blockchain: opening pebble store")
	}
	return &Store{pdb: pdb}, nil
}

func (s *Store) Close() error {
	return s.pdb.Close()
}

func (s *Store) get(key []byte, out any) error {
	value, closer, err := s.pdb.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	defer closer.Close()
	return db.Decode(value, out)
}

func (s *Store) put(key []byte, v any) error {
	value, err := db.Encode(v)
	if err != nil {
		return err
	}
	return s.pdb.Set(key, value, pebble.Sync)
}

// PutBlock indexes a block by both number and hash, and stores its
// transactions/receipts for by-index and by-hash lookup. This is the write
// path a sync loop (out of this spec's scope) would call; it lives here
// because it is the natural counterpart of the read methods below.
func (s *Store) PutBlock(ctx context.Context, block *core.Block) error {
	if err := s.put(db.KeyNumber(db.BucketBlockByNumber, block.Number), block); err != nil {
		return err
	}
	numBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(numBuf, block.Number)
	if err := s.put(db.KeyBytes(db.BucketBlockNumberByHash, block.Hash.Marshal()), numBuf); err != nil {
		return err
	}
	for i, tx := range block.Transactions {
		txKey := db.KeyBytesBytes(db.BucketBlockTxIndex, numBuf, indexSuffix(uint64(i)))
		if err := s.put(txKey, tx); err != nil {
			return err
		}
		if err := s.put(db.KeyBytes(db.BucketTransaction, tx.Hash.Marshal()), tx); err != nil {
			return err
		}
	}
	for _, r := range block.Receipts {
		if err := s.put(db.KeyBytes(db.BucketTransactionReceipt, r.TransactionHash.Marshal()), r); err != nil {
			return err
		}
	}
	return s.put(db.KeyNumber(db.BucketChainHead, 0), numBuf)
}

func indexSuffix(i uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, i)
	return b
}

func (s *Store) BlockByNumber(ctx context.Context, number uint64) (*core.Block, error) {
	var block core.Block
	if err := s.get(db.KeyNumber(db.BucketBlockByNumber, number), &block); err != nil {
		return nil, err
	}
	return &block, nil
}

func (s *Store) BlockByHash(ctx context.Context, hash *felt.Felt) (*core.Block, error) {
	var numBuf []byte
	if err := s.get(db.KeyBytes(db.BucketBlockNumberByHash, hash.Marshal()), &numBuf); err != nil {
		return nil, err
	}
	return s.BlockByNumber(ctx, binary.BigEndian.Uint64(numBuf))
}

func (s *Store) HeadBlock(ctx context.Context) (*core.Block, error) {
	n, err := s.HeadNumber(ctx)
	if err != nil {
		return nil, err
	}
	return s.BlockByNumber(ctx, n)
}

func (s *Store) HeadNumber(ctx context.Context) (uint64, error) {
	var numBuf []byte
	if err := s.get(db.KeyNumber(db.BucketChainHead, 0), &numBuf); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(numBuf), nil
}

// PendingBlock has no durable representation: the pending block is
// rebuilt by the sync loop each round and is intentionally not persisted.
func (s *Store) PendingBlock(ctx context.Context) (*core.Block, error) {
	return nil, ErrNotFound
}

func (s *Store) StateUpdateByHash(ctx context.Context, hash *felt.Felt) (*core.StateUpdate, error) {
	var update core.StateUpdate
	if err := s.get(db.KeyBytes(db.BucketStateUpdateByHash, hash.Marshal()), &update); err != nil {
		return nil, err
	}
	return &update, nil
}

func (s *Store) ContractCode(ctx context.Context, address *felt.Felt) (*core.Class, error) {
	var class core.Class
	if err := s.get(db.KeyBytes(db.BucketContractCode, address.Marshal()), &class); err != nil {
		return nil, err
	}
	return &class, nil
}

func (s *Store) StorageValue(ctx context.Context, address, key *felt.Felt, _ core.BlockID) (*felt.Felt, error) {
	var raw []byte
	if err := s.get(db.KeyBytesBytes(db.BucketStorageValue, address.Marshal(), key.Marshal()), &raw); err != nil {
		return nil, err
	}
	return new(felt.Felt).SetBytes(raw), nil
}

// PutStorageValue indexes a single contract storage slot, independent of
// PutBlock — a sync loop populates state one diff at a time rather than
// re-writing a whole block's storage atomically.
func (s *Store) PutStorageValue(ctx context.Context, address, key, value *felt.Felt) error {
	return s.put(db.KeyBytesBytes(db.BucketStorageValue, address.Marshal(), key.Marshal()), value.Marshal())
}

func (s *Store) TransactionByHash(ctx context.Context, hash *felt.Felt) (*core.Transaction, error) {
	var tx core.Transaction
	if err := s.get(db.KeyBytes(db.BucketTransaction, hash.Marshal()), &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *Store) TransactionByBlockHashAndIndex(ctx context.Context, hash *felt.Felt, index uint64) (*core.Transaction, error) {
	block, err := s.BlockByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	return txAtIndex(block, index)
}

func (s *Store) TransactionByBlockNumberAndIndex(ctx context.Context, number, index uint64) (*core.Transaction, error) {
	block, err := s.BlockByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return txAtIndex(block, index)
}

func txAtIndex(block *core.Block, index uint64) (*core.Transaction, error) {
	if index >= uint64(len(block.Transactions)) {
		return nil, fmt.Errorf("%w: index %d out of range", ErrNotFound, index)
	}
	return block.Transactions[index], nil
}

func (s *Store) TransactionReceipt(ctx context.Context, hash *felt.Felt) (*core.TransactionReceipt, error) {
	var receipt core.TransactionReceipt
	if err := s.get(db.KeyBytes(db.BucketTransactionReceipt, hash.Marshal()), &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (s *Store) BlockTransactionCountByHash(ctx context.Context, hash *felt.Felt) (uint64, error) {
	block, err := s.BlockByHash(ctx, hash)
	if err != nil {
		return 0, err
	}
	return uint64(len(block.Transactions)), nil
}

func (s *Store) BlockTransactionCountByNumber(ctx context.Context, number uint64) (uint64, error) {
	block, err := s.BlockByNumber(ctx, number)
	if err != nil {
		return 0, err
	}
	return uint64(len(block.Transactions)), nil
}

// PendingTransactions has no local mempool in this query-plane-only node;
// it always returns an empty list rather than an error, matching the
// sequencer's own behaviour when nothing is pending.
func (s *Store) PendingTransactions(ctx context.Context) ([]*core.Transaction, error) {
	return nil, nil
}

func (s *Store) HeaderByNumber(ctx context.Context, number uint64) (*core.SignedBlockHeader, error) {
	var header core.SignedBlockHeader
	if err := s.get(db.KeyNumber(db.BucketHeaderByNumber, number), &header); err != nil {
		return nil, err
	}
	return &header, nil
}

// PutHeader indexes a signed header for the header-protocol iteration
// walker, independent of PutBlock (a header can arrive over gossip before
// the full block body does).
func (s *Store) PutHeader(ctx context.Context, header *core.SignedBlockHeader) error {
	return s.put(db.KeyNumber(db.BucketHeaderByNumber, header.Number), header)
}
