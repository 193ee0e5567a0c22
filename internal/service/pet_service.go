package service

import (
	"context"
	"fmt"

	"petshop/internal/domain"
	"petshop/internal/repository"
)

// PetService defines the interface for pet business logic
type PetService interface {
	List(ctx context.Context, filter repository.PetFilter) ([]*domain.Pet, error)
	Get(ctx context.Context, id int64) (*domain.Pet, error)
	Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error)
	Update(ctx context.Context, id int64, pet *domain.Pet) (*domain.Pet, error)
	Delete(ctx context.Context, id int64) error
}

type petService struct {
	petRepo repository.PetRepository
}

// NewPetService creates a new instance of PetService
func NewPetService(petRepo repository.PetRepository) PetService {
	return &petService{petRepo: petRepo}
}

func (s *petService) List(ctx context.Context, filter repository.PetFilter) ([]*domain.Pet, error) {
	pets, err := s.petRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}

func (s *petService) Get(ctx context.Context, id int64) (*domain.Pet, error) {
	return s.petRepo.FindByID(ctx, id)
}

// Create persists a new pet; the id on the returned pet is store-assigned
// and any id supplied by the caller is ignored.
func (s *petService) Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	pet.ID = 0
	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}
	return pet, nil
}

// Update replaces the editable fields of an existing pet. The existence
// check runs first so an unknown id reports not-found regardless of the
// payload.
func (s *petService) Update(ctx context.Context, id int64, pet *domain.Pet) (*domain.Pet, error) {
	existing, err := s.petRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = pet.Name
	existing.Category = pet.Category
	existing.Available = pet.Available

	if err := s.petRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes a pet if it exists. Deleting an absent id is not an
// error, which keeps the operation idempotent.
func (s *petService) Delete(ctx context.Context, id int64) error {
	err := s.petRepo.Delete(ctx, id)
	if err == repository.ErrPetNotFound {
		return nil
	}
	return err
}
