package testdb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskdb/taskdb/internal/errs"
	"github.com/taskdb/taskdb/internal/model"
	"github.com/taskdb/taskdb/internal/repository"
)

// MemCats is an in-memory stand-in for the cats collection with the
// same semantics: unique names and $addToSet for features.
type MemCats struct {
	cats map[string]model.Cat
}

func NewMemCats(cats ...model.Cat) *MemCats {
	m := &MemCats{cats: map[string]model.Cat{}}
	for _, c := range cats {
		c.ID = primitive.NewObjectID()
		m.cats[c.Name] = c
	}
	return m
}

func (m *MemCats) FindAll(context.Context) ([]model.Cat, error) {
	out := []model.Cat{}
	for _, c := range m.cats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemCats) FindByName(_ context.Context, name string) (*model.Cat, error) {
	c, ok := m.cats[name]
	if !ok {
		return nil, errs.NewNotFoundError("Cat not found", true, nil)
	}
	return &c, nil
}

func (m *MemCats) SetAge(_ context.Context, name string, age int) (repository.UpdateCounts, error) {
	c, ok := m.cats[name]
	if !ok {
		return repository.UpdateCounts{}, nil
	}
	modified := int64(0)
	if c.Age != age {
		modified = 1
	}
	c.Age = age
	m.cats[name] = c
	return repository.UpdateCounts{Matched: 1, Modified: modified}, nil
}

func (m *MemCats) AddFeature(_ context.Context, name, feature string) (repository.UpdateCounts, error) {
	c, ok := m.cats[name]
	if !ok {
		return repository.UpdateCounts{}, nil
	}
	for _, f := range c.Features {
		if f == feature {
			return repository.UpdateCounts{Matched: 1}, nil
		}
	}
	c.Features = append(c.Features, feature)
	m.cats[name] = c
	return repository.UpdateCounts{Matched: 1, Modified: 1}, nil
}

func (m *MemCats) DeleteByName(_ context.Context, name string) (int64, error) {
	if _, ok := m.cats[name]; !ok {
		return 0, nil
	}
	delete(m.cats, name)
	return 1, nil
}

func (m *MemCats) DeleteAll(context.Context) (int64, error) {
	n := int64(len(m.cats))
	m.cats = map[string]model.Cat{}
	return n, nil
}

func (m *MemCats) Insert(_ context.Context, cat model.Cat) (string, error) {
	if _, ok := m.cats[cat.Name]; ok {
		return "", errs.NewConflictError("A Cat with this Name already exists", true, nil, nil)
	}
	cat.ID = primitive.NewObjectID()
	m.cats[cat.Name] = cat
	return cat.ID.Hex(), nil
}

// Get returns the stored cat called name.
func (m *MemCats) Get(name string) (model.Cat, bool) {
	c, ok := m.cats[name]
	return c, ok
}

func (m *MemCats) Len() int {
	return len(m.cats)
}
