package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/cache"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/repository"
)

// AutoFill carries the defaults a classification mapping supplies for a new
// ticket. Zero values mean the caller keeps whatever the user supplied.
type AutoFill struct {
	Description       string
	EstimatedDuration string
	SpocID            *int64
}

// ClassificationService resolves (group, category, subcategory) triples to
// ticket defaults via the mapping table, with a Redis read-through cache.
type ClassificationService struct {
	mappings repository.MappingRepository
	cache    *cache.Cache
}

// NewClassificationService constructs the service.
func NewClassificationService(mappings repository.MappingRepository, c *cache.Cache) *ClassificationService {
	return &ClassificationService{mappings: mappings, cache: c}
}

// Lookup returns the auto-fill defaults for the given triple. A missing
// mapping is not an error: the returned AutoFill is nil and the ticket keeps
// its user-supplied fields.
func (s *ClassificationService) Lookup(ctx context.Context, groupID, categoryID int64, subcategoryID *int64) (*AutoFill, error) {
	mapping := s.cache.GetMapping(ctx, groupID, categoryID, subcategoryID)
	if mapping == nil {
		var err error
		mapping, err = s.mappings.FindMatch(ctx, groupID, categoryID, subcategoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		s.cache.SetMapping(ctx, groupID, categoryID, subcategoryID, mapping)
	}

	fill := &AutoFill{
		Description: mapping.DescriptionTemplate,
	}
	if mapping.EstimatedDurationMinutes > 0 {
		fill.EstimatedDuration = fmt.Sprintf("%d minutes", mapping.EstimatedDurationMinutes)
	}
	spocID := mapping.DefaultSpocID
	if spocID > 0 {
		fill.SpocID = &spocID
	}
	return fill, nil
}
