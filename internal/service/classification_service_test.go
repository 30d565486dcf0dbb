package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/cache"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

func TestLookupMissingMappingReturnsNil(t *testing.T) {
	svc := NewClassificationService(&mockMappingRepo{}, cache.New(nil))

	fill, err := svc.Lookup(context.Background(), 5, 2, nil)
	require.NoError(t, err)
	assert.Nil(t, fill)
}

func TestLookupFormatsDuration(t *testing.T) {
	mappings := &mockMappingRepo{
		findMatchFunc: func(ctx context.Context, groupID, categoryID int64, subcategoryID *int64) (*domain.ClassificationMapping, error) {
			return &domain.ClassificationMapping{
				DescriptionTemplate:      "Re-image the laptop.",
				EstimatedDurationMinutes: 120,
				DefaultSpocID:            3,
			}, nil
		},
	}
	svc := NewClassificationService(mappings, cache.New(nil))

	fill, err := svc.Lookup(context.Background(), 5, 2, int64Ptr(7))
	require.NoError(t, err)
	require.NotNil(t, fill)
	assert.Equal(t, "Re-image the laptop.", fill.Description)
	assert.Equal(t, "120 minutes", fill.EstimatedDuration)
	require.NotNil(t, fill.SpocID)
	assert.Equal(t, int64(3), *fill.SpocID)
}

func TestLookupZeroDurationLeftEmpty(t *testing.T) {
	mappings := &mockMappingRepo{
		findMatchFunc: func(ctx context.Context, groupID, categoryID int64, subcategoryID *int64) (*domain.ClassificationMapping, error) {
			return &domain.ClassificationMapping{DefaultSpocID: 3}, nil
		},
	}
	svc := NewClassificationService(mappings, cache.New(nil))

	fill, err := svc.Lookup(context.Background(), 5, 2, nil)
	require.NoError(t, err)
	require.NotNil(t, fill)
	assert.Empty(t, fill.EstimatedDuration)
}
