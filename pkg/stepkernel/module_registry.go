package stepkernel

import (
	memdb "github.com/hashicorp/go-memdb"
)

// taskTableSchema backs a Module's task lookup with go-memdb: an
// immutable, indexed in-memory database built once at module
// construction and queried by name on every call. A Module's task table
// never changes after construction: it is filled by one write txn in
// newTaskRegistry, and every later lookup opens its own short-lived
// read txn. The indexed-by-name lookup and schema validation are
// exactly what a task table needs and are more idiomatic here than a
// bare map.
var taskTableSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"tasks": {
			Name: "tasks",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Name"},
				},
			},
		},
	},
}

// taskRegistry wraps the memdb handle and exposes the narrow read-only
// API the rest of the package needs.
type taskRegistry struct {
	db *memdb.MemDB
}

func newTaskRegistry(tasks []*Task) (*taskRegistry, error) {
	db, err := memdb.NewMemDB(taskTableSchema)
	if err != nil {
		return nil, err
	}
	txn := db.Txn(true)
	for _, t := range tasks {
		if err := txn.Insert("tasks", t); err != nil {
			txn.Abort()
			return nil, err
		}
	}
	txn.Commit()
	return &taskRegistry{db: db}, nil
}

func (r *taskRegistry) lookup(name string) (*Task, bool) {
	txn := r.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First("tasks", "id", name)
	if err != nil || raw == nil {
		return nil, false
	}
	return raw.(*Task), true
}

func (r *taskRegistry) all() []*Task {
	txn := r.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get("tasks", "id")
	if err != nil {
		return nil
	}
	var out []*Task
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw.(*Task))
	}
	return out
}
