package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartInactiveFavoritesCleaner purges deactivated favorites older than
// retention every interval until ctx is done.
func StartInactiveFavoritesCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM favorites
                     WHERE active = false
                       AND deactivated_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to clean deactivated favorites", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned deactivated favorites", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
