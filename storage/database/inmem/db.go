package inmemdb

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tundavala/escola/core/contact"
	"github.com/tundavala/escola/core/tuition"
	"github.com/tundavala/escola/core/user"
	"github.com/tundavala/escola/core/visit"
)

var nowFunc = func() time.Time { return time.Now().UTC() } // mockable

type (
	// DB holds every record in process memory. Each DB is independent of the others.
	DB struct {
		user        *table[user.User]
		contact     *table[contact.Contact]
		tuition     *table[tuition.Calculation]
		appointment *table[visit.Appointment]
	}

	row[T any] struct {
		seq       uint64 // insertion order, breaks createdAt ties
		createdAt time.Time
		val       T
	}

	table[T any] struct {
		sync.RWMutex
		rows map[string]*row[T]
		seq  uint64
	}
)

func Open() *DB {
	return &DB{
		user:        newTable[user.User](),
		contact:     newTable[contact.Contact](),
		tuition:     newTable[tuition.Calculation](),
		appointment: newTable[visit.Appointment](),
	}
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*row[T])}
}

// newID returns a random ID not used in `t`. The caller holds the write lock.
func (t *table[T]) newID() string {
	for {
		id := uuid.NewString()
		if _, taken := t.rows[id]; !taken {
			return id
		}
	}
}

// insert stores `val` under `id`. The caller holds the write lock.
func (t *table[T]) insert(id string, createdAt time.Time, val T) {
	t.seq++
	t.rows[id] = &row[T]{seq: t.seq, createdAt: createdAt, val: val}
}

// query returns every value, most recent first. The caller holds a lock.
func (t *table[T]) query() []T {
	rows := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].createdAt.Equal(rows[j].createdAt) {
			return rows[i].createdAt.After(rows[j].createdAt)
		}
		return rows[i].seq > rows[j].seq
	})

	vals := make([]T, 0, len(rows))
	for _, r := range rows {
		vals = append(vals, r.val)
	}
	return vals
}
