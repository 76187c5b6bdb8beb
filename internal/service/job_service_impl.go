package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rcalloway/timebill/internal/domain"
	"github.com/rcalloway/timebill/internal/repository"
)

type jobService struct {
	jobs       repository.JobRepo
	activities repository.ActivityRepo
}

func NewJobService(jobs repository.JobRepo, activities repository.ActivityRepo) JobService {
	return &jobService{jobs: jobs, activities: activities}
}

func (s *jobService) Create(ctx context.Context, j *domain.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	return s.jobs.Create(ctx, j)
}

func (s *jobService) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *jobService) GetByNumber(ctx context.Context, jobNumber string) (*domain.Job, error) {
	return s.jobs.GetByNumber(ctx, jobNumber)
}

func (s *jobService) List(ctx context.Context) ([]*domain.Job, error) {
	return s.jobs.List(ctx)
}

func (s *jobService) Update(ctx context.Context, j *domain.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}
	j.UpdatedAt = time.Now().UTC()
	return s.jobs.Update(ctx, j)
}

func (s *jobService) Delete(ctx context.Context, id string) error {
	return s.jobs.Delete(ctx, id)
}

func (s *jobService) AddActivity(ctx context.Context, a *domain.Activity) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().UTC()
	return s.activities.Create(ctx, a)
}

func (s *jobService) ListActivities(ctx context.Context, jobID string) ([]*domain.Activity, error) {
	return s.activities.ListByJob(ctx, jobID)
}

func (s *jobService) DeleteActivity(ctx context.Context, id string) error {
	return s.activities.Delete(ctx, id)
}
