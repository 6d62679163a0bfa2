package services

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Uploads younger than this may still be waiting for their post row.
const orphanMediaGracePeriod = time.Hour

func DoAutoMediaCleanup() {
	log.Debug().Msg("Cleaning up orphan media...")

	count, err := CleanupOrphanMedia(time.Now().Add(-orphanMediaGracePeriod))
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when cleaning up orphan media...")
	} else {
		log.Info().Int("count", count).Msg("Cleaned up orphan media!")
	}
}

// CleanupOrphanMedia deletes uploaded images last modified before the given
// time that no post refers to anymore.
func CleanupOrphanMedia(before time.Time) (int, error) {
	entries, err := os.ReadDir(filepath.Join(MediaRoot(), ImageUploadDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	var used []string
	if err := database.C.Model(&models.Post{}).
		Where("image <> ?", "").
		Pluck("image", &used).Error; err != nil {
		return 0, err
	}
	usedSet := lo.SliceToMap(used, func(item string) (string, bool) {
		return item, true
	})

	var count int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := path.Join(ImageUploadDir, entry.Name())
		if usedSet[name] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(before) {
			continue
		}
		if err := DeleteImage(name); err != nil {
			log.Warn().Err(err).Str("path", name).Msg("Unable to delete orphan media...")
			continue
		}
		count++
	}

	return count, nil
}
