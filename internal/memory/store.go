package memory

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"evminspect/internal/disasm"
)

// memoryPrefix + contract (20 bytes) + address (8 bytes big endian) -> value.
// Big-endian addresses make leveldb's key order the address order.
var memoryPrefix = []byte("m")

const keyLen = 1 + common.AddressLength + 8

func contractPrefix(contract common.Address) []byte {
	return append(bytes.Clone(memoryPrefix), contract.Bytes()...)
}

func cellKey(contract common.Address, addr uint64) []byte {
	key := make([]byte, 0, keyLen)
	key = append(key, memoryPrefix...)
	key = append(key, contract.Bytes()...)
	return binary.BigEndian.AppendUint64(key, addr)
}

// Store keeps contract memory in a leveldb database.
type Store struct {
	db *leveldb.DB
}

// Open opens or creates a store at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{
		OpenFilesCacheCapacity: 16,
		BlockCacheCapacity:     8 * opt.MiB,
	})
	if err != nil {
		return nil, fmt.Errorf("opening memory store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// OpenMemory returns a store that lives only in memory.
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put replaces the memory of contract with cells in a single batch.
func (s *Store) Put(contract common.Address, cells []disasm.Cell) error {
	batch := new(leveldb.Batch)

	it := s.db.NewIterator(util.BytesPrefix(contractPrefix(contract)), nil)
	for it.Next() {
		batch.Delete(bytes.Clone(it.Key()))
	}
	it.Release()
	if err := it.Error(); err != nil {
		return fmt.Errorf("clearing memory of %s: %w", contract.Hex(), err)
	}

	for _, c := range cells {
		batch.Put(cellKey(contract, c.Addr), []byte{c.Value})
	}
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("writing memory of %s: %w", contract.Hex(), err)
	}
	return nil
}

// Cells returns the stored memory of contract in address order.
func (s *Store) Cells(ctx context.Context, contract common.Address) ([]disasm.Cell, error) {
	it := s.db.NewIterator(util.BytesPrefix(contractPrefix(contract)), nil)
	defer it.Release()

	var cells []disasm.Cell
	for it.Next() {
		if len(cells)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		key, val := it.Key(), it.Value()
		if len(key) != keyLen || len(val) != 1 {
			return nil, fmt.Errorf("corrupt memory entry %x", key)
		}
		cells = append(cells, disasm.Cell{
			Addr:  binary.BigEndian.Uint64(key[keyLen-8:]),
			Value: val[0],
		})
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("reading memory of %s: %w", contract.Hex(), err)
	}
	return cells, nil
}

// Contracts lists every contract with stored memory, in key order.
func (s *Store) Contracts() ([]common.Address, error) {
	it := s.db.NewIterator(util.BytesPrefix(memoryPrefix), nil)
	defer it.Release()

	var out []common.Address
	for ok := it.First(); ok; {
		key := it.Key()
		if len(key) != keyLen {
			ok = it.Next()
			continue
		}
		contract := common.BytesToAddress(key[len(memoryPrefix) : len(memoryPrefix)+common.AddressLength])
		out = append(out, contract)
		// Jump past the rest of this contract's cells.
		ok = it.Seek(util.BytesPrefix(contractPrefix(contract)).Limit)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	return out, nil
}
