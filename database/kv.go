package database

import (
	"strconv"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"
	"go.uber.org/zap"
)

// KVStore is a badger-backed implementation of DB.
type KVStore struct {
	db  *badger.DB
	log *zap.Logger
}

func NewKVStore(path string, log *zap.Logger) (*KVStore, error) {
	s := &KVStore{
		log: log,
	}

	opts := badger.DefaultOptions(path)
	opts.Truncate = true
	opts.ValueLogLoadingMode = options.FileIO
	opts.NumVersionsToKeep = 1
	db, err := badger.Open(opts)
	if err != nil {
		s.log.Error("failed to open badger store", zap.Error(err))
		return nil, err
	}
	s.db = db

	go func(s *KVStore) {
		gcTimer := time.NewTicker(time.Hour)
		for range gcTimer.C {
			if err := s.db.RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
				s.log.Error("failed to run gc", zap.Error(err))
			}
		}
	}(s)

	return s, nil
}

func key(guildID string) []byte {
	return []byte("logchannel:" + guildID)
}

func (s *KVStore) Get(guildID string) (int64, error) {
	var body []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(guildID))
		if err != nil {
			return err
		}
		body, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to read value", zap.Error(err))
		return 0, err
	}

	return strconv.ParseInt(string(body), 10, 64)
}

func (s *KVStore) Set(guildID string, channelID int64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(guildID), []byte(strconv.FormatInt(channelID, 10)))
	})
}

func (s *KVStore) Clear(guildID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(guildID)); err != nil {
			return err
		}
		return txn.Delete(key(guildID))
	})
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	return err
}

func (s *KVStore) Close() error {
	return s.db.Close()
}
