package services

import (
	"go.uber.org/zap"
)

// CleanupLegacyFavorites drops the name-keyed favorites written by older
// releases and makes sure the current key holds a valid JSON array,
// rewriting it to [] when it is missing or corrupt. Failures are logged.
func CleanupLegacyFavorites(kv KV, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, ok, err := kv.Get(LegacyFavoritesKey); err != nil {
		logger.Warn("failed to read legacy favorites", zap.Error(err))
	} else if ok {
		if err := kv.Delete(LegacyFavoritesKey); err != nil {
			logger.Warn("failed to remove legacy favorites", zap.Error(err))
		} else {
			logger.Info("removed legacy favorites key", zap.String("key", LegacyFavoritesKey))
		}
	}

	raw, ok, err := kv.Get(FavoritesKey)
	if err != nil {
		logger.Warn("failed to read favorites", zap.Error(err))
		return
	}
	if ok {
		if ids, valid := ParseFavorites(raw); valid {
			logger.Debug("favorites valid", zap.Int("count", len(ids)))
			return
		}
		logger.Info("resetting corrupt favorites", zap.String("value", raw))
	}
	if err := kv.Set(FavoritesKey, "[]"); err != nil {
		logger.Warn("failed to initialise favorites", zap.Error(err))
	}
}
