package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/pkg/errors"
	"github.com/quantgov/mrm/pkg/logger"
)

func TestRubricManagerActiveReturnsClone(t *testing.T) {
	mgr := NewRubricManager(models.DefaultRubric(), logger.NewNoopLogger())

	snapshot := mgr.Active()
	snapshot.Weights[0].Weight = 99

	assert.Equal(t, 5.0, mgr.Active().Weights[0].Weight)
}

func TestRubricManagerReplace(t *testing.T) {
	mgr := NewRubricManager(models.DefaultRubric(), logger.NewNoopLogger())

	candidate := models.DefaultRubric()
	candidate.Weights[0].Weight = 7
	require.NoError(t, mgr.Replace(context.Background(), candidate))

	assert.Equal(t, 7.0, mgr.Active().Weights[0].Weight)
}

func TestRubricManagerRejectsInvalidReplacement(t *testing.T) {
	mgr := NewRubricManager(models.DefaultRubric(), logger.NewNoopLogger())

	candidate := models.DefaultRubric()
	candidate.Thresholds = nil

	err := mgr.Replace(context.Background(), candidate)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRubric(err))

	// The previous rubric stays active.
	assert.Len(t, mgr.Active().Thresholds, 3)
}

func TestRubricManagerConcurrentReplace(t *testing.T) {
	mgr := NewRubricManager(models.DefaultRubric(), logger.NewNoopLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(weight float64) {
			defer wg.Done()
			candidate := models.DefaultRubric()
			candidate.Weights[0].Weight = weight
			_ = mgr.Replace(context.Background(), candidate)
		}(float64(i + 1))
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mgr.Active()
		}()
	}
	wg.Wait()

	// Last writer wins; whichever it was, the result is a valid rubric.
	assert.NoError(t, mgr.Active().Validate())
}
