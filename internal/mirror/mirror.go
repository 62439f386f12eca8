// Package mirror implements the durable write-through bridge: committed
// in-memory mutations are persisted into a local sqlite key-value table and
// reloaded at startup. It stands in for the browser's durable storage, so the
// contract is deliberately small: load everything per kind, save one record,
// last write wins.
package mirror

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Record is the gorm model backing the mirror: one JSON blob per entity,
// keyed by (kind, id).
type Record struct {
	Kind string `gorm:"primaryKey"`
	ID   string `gorm:"primaryKey"`
	Data []byte
}

type op struct {
	kind   string
	id     string
	data   []byte
	delete bool
}

// Mirror persists entity snapshots asynchronously. Save and Delete enqueue
// and return immediately; a failed write is logged, never surfaced, so a
// mirror outage can not fail an in-memory mutation.
type Mirror struct {
	db  *gorm.DB
	log *zap.Logger

	ops  chan op
	done chan struct{}
	once sync.Once
}

// Open connects the sqlite mirror at dsn (":memory:" works for tests),
// migrates the record table and starts the write worker.
func Open(dsn string, lg *zap.Logger) (*Mirror, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}

	m := &Mirror{
		db:   db,
		log:  lg,
		ops:  make(chan op, 256),
		done: make(chan struct{}),
	}
	go m.worker()
	return m, nil
}

func (m *Mirror) worker() {
	defer close(m.done)
	for o := range m.ops {
		var err error
		if o.delete {
			err = m.db.Delete(&Record{}, "kind = ? AND id = ?", o.kind, o.id).Error
		} else {
			err = m.db.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&Record{Kind: o.kind, ID: o.id, Data: o.data}).Error
		}
		if err != nil {
			m.log.Warn("mirror write failed",
				zap.String("kind", o.kind),
				zap.String("id", o.id),
				zap.Error(err))
		}
	}
}

// Load returns every persisted record of a kind, in insertion order.
func (m *Mirror) Load(kind string) ([]json.RawMessage, error) {
	var records []Record
	if err := m.db.Where("kind = ?", kind).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		out = append(out, json.RawMessage(r.Data))
	}
	return out, nil
}

// Save enqueues a fire-and-forget upsert of one record.
func (m *Mirror) Save(kind, id string, record any) {
	data, err := json.Marshal(record)
	if err != nil {
		m.log.Warn("mirror marshal failed", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
		return
	}
	m.ops <- op{kind: kind, id: id, data: data}
}

// Delete enqueues a fire-and-forget removal of one record.
func (m *Mirror) Delete(kind, id string) {
	m.ops <- op{kind: kind, id: id, delete: true}
}

// Close drains pending writes and stops the worker.
func (m *Mirror) Close() error {
	m.once.Do(func() {
		close(m.ops)
	})
	<-m.done
	db, err := m.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
