package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/pkg/errors"
	"github.com/quantgov/mrm/pkg/logger"
)

// LoadRubric reads and validates a rubric from a yaml file. An empty path
// yields the built-in default rubric. Validation failures surface as
// invalid_rubric errors at load time, never at scoring time.
//
// The file is decoded with yaml.v3 rather than viper: score-table options
// ("High", "Regulated-PII") and tier labels ("Tier 1") are case-sensitive
// lookup keys, and viper lower-cases every map key it reads.
func LoadRubric(path string) (*models.Rubric, error) {
	if path == "" {
		return models.DefaultRubric(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ErrRubricInvalid("cannot read rubric file").WithError(err)
	}

	var rubric models.Rubric
	if err := yaml.Unmarshal(raw, &rubric); err != nil {
		return nil, errors.ErrRubricInvalid("cannot parse rubric file").WithError(err)
	}

	if err := rubric.Validate(); err != nil {
		return nil, err
	}
	return &rubric, nil
}

// WatchRubric watches the rubric file and invokes onChange with each valid
// reload. An edit that fails validation is logged and dropped; the caller's
// active rubric stays in place. The watcher stops when ctx is cancelled.
func WatchRubric(ctx context.Context, path string, log logger.Logger, onChange func(*models.Rubric)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.ErrInternal.WithMessage("cannot create rubric watcher").WithError(err)
	}

	// Watch the directory rather than the file: editors often replace the
	// file on save, which would orphan a direct file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return errors.ErrInternal.WithMessage("cannot watch rubric directory").WithError(err)
	}

	log.Info(ctx, "watching rubric file", logger.String("path", path))

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.EqualFold(filepath.Clean(event.Name), filepath.Clean(path)) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				rubric, err := LoadRubric(path)
				if err != nil {
					log.Warn(ctx, "ignoring invalid rubric edit", logger.Error(err))
					continue
				}
				onChange(rubric)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn(ctx, "rubric watcher error", logger.Error(err))
			}
		}
	}()

	return nil
}
