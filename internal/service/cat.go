package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskdb/taskdb/internal/errs"
	"github.com/taskdb/taskdb/internal/model"
	"github.com/taskdb/taskdb/internal/repository"
	"github.com/taskdb/taskdb/internal/validation"
)

// CatStore is the cats collection as the service needs it.
type CatStore interface {
	FindAll(ctx context.Context) ([]model.Cat, error)
	FindByName(ctx context.Context, name string) (*model.Cat, error)
	SetAge(ctx context.Context, name string, age int) (repository.UpdateCounts, error)
	AddFeature(ctx context.Context, name, feature string) (repository.UpdateCounts, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Insert(ctx context.Context, cat model.Cat) (string, error)
}

// CatInput is what the create action collects.
type CatInput struct {
	Name     string   `validate:"required,max=100"`
	Age      int      `validate:"gte=0"`
	Features []string `validate:"dive,required"`
}

func (c *CatInput) Validate() error {
	return validation.Struct(c)
}

// ExampleCat is inserted when the menu starts unless a cat with the
// same name exists.
func ExampleCat() model.Cat {
	return model.Cat{
		Name:     "barsik",
		Age:      3,
		Features: []string{"wears slippers", "lets you pet him", "ginger"},
	}
}

type CatService struct {
	store CatStore
	log   *zerolog.Logger
}

func NewCatService(store CatStore, logger *zerolog.Logger) *CatService {
	return &CatService{store: store, log: logger}
}

func catNotFound(name string) error {
	code := "CAT_NOT_FOUND"
	return errs.NewNotFoundError(fmt.Sprintf("Cat named '%s' not found.", name), true, &code)
}

// EnsureExample inserts ExampleCat and reports whether it was added.
// An existing cat with that name is not an error.
func (s *CatService) EnsureExample(ctx context.Context) (bool, error) {
	_, err := s.store.Insert(ctx, ExampleCat())
	switch {
	case err == nil:
		s.log.Info().Str("name", ExampleCat().Name).Msg("example cat inserted")
		return true, nil
	case errors.Is(err, errs.ErrConflict):
		return false, nil
	default:
		return false, err
	}
}

// List returns every cat sorted by name.
func (s *CatService) List(ctx context.Context) ([]model.Cat, error) {
	return s.store.FindAll(ctx)
}

func (s *CatService) FindByName(ctx context.Context, name string) (*model.Cat, error) {
	cat, err := s.store.FindByName(ctx, name)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, catNotFound(name)
	}
	return cat, err
}

func (s *CatService) UpdateAge(ctx context.Context, name string, age int) error {
	counts, err := s.store.SetAge(ctx, name, age)
	if err != nil {
		return err
	}
	if counts.Matched == 0 {
		return catNotFound(name)
	}
	return nil
}

// AddFeature reports false when the cat already had the feature.
func (s *CatService) AddFeature(ctx context.Context, name, feature string) (bool, error) {
	counts, err := s.store.AddFeature(ctx, name, feature)
	if err != nil {
		return false, err
	}
	if counts.Matched == 0 {
		return false, catNotFound(name)
	}
	return counts.Modified > 0, nil
}

func (s *CatService) DeleteByName(ctx context.Context, name string) error {
	deleted, err := s.store.DeleteByName(ctx, name)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return catNotFound(name)
	}
	return nil
}

// DeleteAll removes every document and returns how many were removed.
func (s *CatService) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Warn().Int64("deleted", deleted).Msg("all cats deleted")
	return deleted, nil
}

// Create validates in and inserts it. A taken name is a conflict.
func (s *CatService) Create(ctx context.Context, in CatInput) (string, error) {
	if err := validation.Check(&in); err != nil {
		return "", err
	}

	features := in.Features
	if features == nil {
		features = []string{}
	}
	id, err := s.store.Insert(ctx, model.Cat{Name: in.Name, Age: in.Age, Features: features})
	if errors.Is(err, errs.ErrConflict) {
		code := "CAT_ALREADY_EXISTS"
		return "", errs.NewConflictError(fmt.Sprintf("A cat named '%s' already exists.", in.Name), true, &code, err)
	}
	return id, err
}
