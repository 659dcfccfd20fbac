// Package memstore is an in-memory storage.DB used by unit tests of the
// ingestion, classification and reconciliation services.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage"
	"github.com/kurniadi/rcdash/pkg/types"
)

type DB struct {
	mu sync.Mutex

	apps     []models.Application
	dict     []models.DictionaryEntry
	unmapped []models.UnmappedCode
	facts    []models.SuccessRateFact
	nextID   int64

	// Failure injection for rollback tests.
	FailInsertBatch    error
	FailUnmappedUpsert error
}

func New() *DB {
	return &DB{nextID: 1}
}

var _ storage.DB = (*DB)(nil)

func (d *DB) Applications() storage.ApplicationStore { return (*applicationStore)(d) }
func (d *DB) Dictionary() storage.DictionaryStore    { return (*dictionaryStore)(d) }
func (d *DB) Unmapped() storage.UnmappedStore        { return (*unmappedStore)(d) }
func (d *DB) Facts() storage.FactStore               { return (*factStore)(d) }

// InTx snapshots the state and restores it when fn fails, mimicking a real
// transaction rollback.
func (d *DB) InTx(ctx context.Context, fn func(storage.Stores) error) error {
	d.mu.Lock()
	apps := append([]models.Application(nil), d.apps...)
	dict := append([]models.DictionaryEntry(nil), d.dict...)
	unmapped := append([]models.UnmappedCode(nil), d.unmapped...)
	facts := append([]models.SuccessRateFact(nil), d.facts...)
	nextID := d.nextID
	d.mu.Unlock()

	if err := fn(d); err != nil {
		d.mu.Lock()
		d.apps, d.dict, d.unmapped, d.facts, d.nextID = apps, dict, unmapped, facts, nextID
		d.mu.Unlock()
		return err
	}
	return nil
}

func (d *DB) id() int64 {
	id := d.nextID
	d.nextID++
	return id
}

// SeedApplication registers an application and returns its id.
func (d *DB) SeedApplication(name string) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	app := models.Application{ID: d.id(), Name: name}
	d.apps = append(d.apps, app)
	return app.ID
}

// SeedDictionary registers a dictionary entry and returns its id.
func (d *DB) SeedDictionary(appID int64, txType, rc string, class types.ErrorClass) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := models.DictionaryEntry{ID: d.id(), ApplicationID: appID, TransactionType: txType, RC: rc, ErrorClass: class}
	d.dict = append(d.dict, e)
	return e.ID
}

// AllFacts returns a copy of all stored fact rows in insertion order.
func (d *DB) AllFacts() []models.SuccessRateFact {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.SuccessRateFact(nil), d.facts...)
}

// AllUnmapped returns a copy of all unmapped codes.
func (d *DB) AllUnmapped() []models.UnmappedCode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.UnmappedCode(nil), d.unmapped...)
}

// AllDictionary returns a copy of all dictionary entries ordered by id.
func (d *DB) AllDictionary() []models.DictionaryEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := append([]models.DictionaryEntry(nil), d.dict...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type applicationStore DB

func (s *applicationStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *applicationStore) Get(_ context.Context, id int64) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.ID == id {
			app := a
			return &app, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *applicationStore) List(_ context.Context) ([]*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Application, 0, len(s.apps))
	for i := range s.apps {
		app := s.apps[i]
		out = append(out, &app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *applicationStore) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.Name == app.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	app.ID = (*DB)(s).id()
	s.apps = append(s.apps, *app)
	return nil
}

func (s *applicationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.apps {
		if a.ID == id {
			s.apps = append(s.apps[:i], s.apps[i+1:]...)
			break
		}
	}
	return nil
}

type dictionaryStore DB

func (s *dictionaryStore) FindByAppTypeCode(_ context.Context, appID int64, txType, rc string) (*models.DictionaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.dict {
		if e.ApplicationID == appID && e.TransactionType == txType && e.RC == rc {
			entry := e
			return &entry, nil
		}
	}
	return nil, nil
}

func (s *dictionaryStore) FindByAppCode(_ context.Context, appID int64, rc string) (*models.DictionaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *models.DictionaryEntry
	for i := range s.dict {
		e := s.dict[i]
		if e.ApplicationID == appID && e.RC == rc {
			if best == nil || e.ID < best.ID {
				entry := e
				best = &entry
			}
		}
	}
	return best, nil
}

func (s *dictionaryStore) Upsert(_ context.Context, entry *models.DictionaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.dict {
		e := &s.dict[i]
		if e.ApplicationID == entry.ApplicationID && e.TransactionType == entry.TransactionType && e.RC == entry.RC {
			e.ErrorClass = entry.ErrorClass
			if entry.Description != nil {
				e.Description = entry.Description
			}
			entry.ID = e.ID
			return nil
		}
	}
	entry.ID = (*DB)(s).id()
	s.dict = append(s.dict, *entry)
	return nil
}

func (s *dictionaryStore) Get(_ context.Context, id int64) (*models.DictionaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.dict {
		if e.ID == id {
			entry := e
			return &entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *dictionaryStore) UpdateErrorClass(_ context.Context, id int64, class types.ErrorClass) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.dict {
		if s.dict[i].ID == id {
			s.dict[i].ErrorClass = class
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *dictionaryStore) UpdateDescription(_ context.Context, id int64, desc *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.dict {
		if s.dict[i].ID == id {
			s.dict[i].Description = desc
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *dictionaryStore) List(_ context.Context, p storage.ListParams) ([]*models.DictionaryEntry, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.DictionaryEntry
	for i := range s.dict {
		e := s.dict[i]
		if p.ApplicationID != nil && e.ApplicationID != *p.ApplicationID {
			continue
		}
		entry := e
		out = append(out, &entry)
	}
	total := int64(len(out))
	return page(out, p), total, nil
}

type unmappedStore DB

func (s *unmappedStore) Upsert(_ context.Context, rec *models.UnmappedCode) error {
	if s.FailUnmappedUpsert != nil {
		return s.FailUnmappedUpsert
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.unmapped {
		u := &s.unmapped[i]
		if u.ApplicationID == rec.ApplicationID && u.TransactionType == rec.TransactionType && u.RC == rec.RC {
			u.Description = rec.Description
			u.Status = rec.Status
			rec.ID = u.ID
			return nil
		}
	}
	rec.ID = (*DB)(s).id()
	s.unmapped = append(s.unmapped, *rec)
	return nil
}

func (s *unmappedStore) Get(_ context.Context, id int64) (*models.UnmappedCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.unmapped {
		if u.ID == id {
			rec := u
			return &rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *unmappedStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.unmapped {
		if u.ID == id {
			s.unmapped = append(s.unmapped[:i], s.unmapped[i+1:]...)
			break
		}
	}
	return nil
}

func (s *unmappedStore) List(_ context.Context, appID *int64) ([]*models.UnmappedCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.UnmappedCode
	for i := range s.unmapped {
		u := s.unmapped[i]
		if appID != nil && u.ApplicationID != *appID {
			continue
		}
		rec := u
		out = append(out, &rec)
	}
	return out, nil
}

type factStore DB

func (s *factStore) InsertBatch(_ context.Context, rows []*models.SuccessRateFact) error {
	if s.FailInsertBatch != nil {
		return s.FailInsertBatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		r.ID = (*DB)(s).id()
		s.facts = append(s.facts, *r)
	}
	return nil
}

func (s *factStore) Get(_ context.Context, id int64) (*models.SuccessRateFact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.facts {
		if f.ID == id {
			fact := f
			return &fact, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *factStore) PatchErrorClass(_ context.Context, appID int64, txType, rc string, class types.ErrorClass) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for i := range s.facts {
		f := &s.facts[i]
		if f.ApplicationID != appID || f.ErrorClass != nil || f.RC == nil || *f.RC != rc {
			continue
		}
		if txType != "" && f.TransactionType != txType {
			continue
		}
		c := class
		f.ErrorClass = &c
		n++
	}
	return n, nil
}

func (s *factStore) PatchDescription(_ context.Context, appID int64, txType, rc string, desc *string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for i := range s.facts {
		f := &s.facts[i]
		if f.ApplicationID != appID || f.TransactionType != txType || f.RC == nil || *f.RC != rc {
			continue
		}
		f.Description = desc
		n++
	}
	return n, nil
}

func (s *factStore) AssignRC(_ context.Context, id int64, rc string, desc *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.facts {
		if s.facts[i].ID == id {
			s.facts[i].RC = &rc
			s.facts[i].Description = desc
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *factStore) ListNoRC(_ context.Context, p storage.ListParams) ([]*models.SuccessRateFact, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.SuccessRateFact
	for i := range s.facts {
		f := s.facts[i]
		if f.RC != nil {
			continue
		}
		if f.Status != nil && isSuccessAlias(*f.Status) {
			continue
		}
		if p.ApplicationID != nil && f.ApplicationID != *p.ApplicationID {
			continue
		}
		fact := f
		out = append(out, &fact)
	}
	total := int64(len(out))
	return page(out, p), total, nil
}

func isSuccessAlias(status string) bool {
	switch strings.ToLower(status) {
	case "sukses", "success":
		return true
	}
	return false
}

func page[T any](rows []T, p storage.ListParams) []T {
	if p.Offset > 0 {
		if p.Offset >= len(rows) {
			return nil
		}
		rows = rows[p.Offset:]
	}
	if p.Limit > 0 && p.Limit < len(rows) {
		rows = rows[:p.Limit]
	}
	return rows
}
