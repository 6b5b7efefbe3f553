package database

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// JsonDB keeps the full guild mapping in memory and rewrites a single JSON
// file after every mutation. The file holds one object mapping guild ID
// strings to channel ID integers.
type JsonDB struct {
	sync.Mutex
	path     string
	log      *zap.Logger
	channels map[string]int64
}

func NewJsonDatabase(path string, log *zap.Logger) *JsonDB {
	db := &JsonDB{
		path:     path,
		log:      log,
		channels: make(map[string]int64),
	}
	db.load()
	return db
}

// load reads the mapping from disk. A missing or unparseable file leaves the
// mapping empty; neither is fatal.
func (j *JsonDB) load() {
	d, err := os.ReadFile(j.path)
	if err != nil {
		j.log.Info("no data file found, starting empty", zap.String("path", j.path))
		return
	}

	channels := make(map[string]int64)
	if err := json.Unmarshal(d, &channels); err != nil {
		j.log.Warn("data file unreadable, starting empty", zap.Error(err))
		return
	}
	j.channels = channels
}

// save writes the full mapping to a temp file and renames it into place, so a
// concurrent reader never sees a partial write. Caller must hold the lock.
func (j *JsonDB) save() error {
	d, err := json.Marshal(j.channels)
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(j.path), "."+filepath.Base(j.path)+".tmp")
	if err := os.WriteFile(tmp, d, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, j.path)
}

func (j *JsonDB) Get(guildID string) (int64, error) {
	j.Lock()
	defer j.Unlock()
	if ch, ok := j.channels[guildID]; ok {
		return ch, nil
	}
	return 0, ErrNotFound
}

func (j *JsonDB) Set(guildID string, channelID int64) error {
	j.Lock()
	defer j.Unlock()
	j.channels[guildID] = channelID
	return j.save()
}

func (j *JsonDB) Clear(guildID string) error {
	j.Lock()
	defer j.Unlock()
	if _, ok := j.channels[guildID]; !ok {
		return ErrNotFound
	}
	delete(j.channels, guildID)
	return j.save()
}

func (j *JsonDB) Close() error {
	return nil
}
