package repofake

import (
	"sync"

	"github.com/jrsteele09/go-shop-admin/credentials"
)

var _ credentials.Persister = (*FakePersister)(nil)

// FakePersister keeps the record in memory and can be told to fail.
type FakePersister struct {
	lock    sync.Mutex
	record  credentials.Record
	exists  bool
	saves   int
	deletes int

	LoadErr   error
	SaveErr   error
	DeleteErr error
}

func NewFakePersister() *FakePersister {
	return &FakePersister{}
}

// NewFakePersisterWith starts from an already persisted record.
func NewFakePersisterWith(record credentials.Record) *FakePersister {
	return &FakePersister{record: record, exists: true}
}

func (p *FakePersister) Load() (credentials.Record, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.LoadErr != nil {
		return credentials.Record{}, p.LoadErr
	}
	return p.record, nil
}

func (p *FakePersister) Save(record credentials.Record) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.saves++
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.record = record
	p.exists = true
	return nil
}

func (p *FakePersister) Delete() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.deletes++
	if p.DeleteErr != nil {
		return p.DeleteErr
	}
	p.record = credentials.Record{}
	p.exists = false
	return nil
}

// Stored returns what a fresh process would load, and whether anything is persisted.
func (p *FakePersister) Stored() (credentials.Record, bool) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.record, p.exists
}

func (p *FakePersister) Saves() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.saves
}

func (p *FakePersister) Deletes() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.deletes
}
