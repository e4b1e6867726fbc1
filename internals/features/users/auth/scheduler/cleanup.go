package scheduler

import (
	"context"
	"log"
	"time"

	"videoach_backend/internals/configs"
	"videoach_backend/internals/features/users/auth/model"
	authRepo "videoach_backend/internals/features/users/auth/repository"

	"gorm.io/gorm"
)

const cleanupBatch = 100

// StartBlacklistCleanupScheduler purges blacklisted tokens older than
// TOKEN_BLACKLIST_TTL_DAYS (default 7) and expired refresh tokens, once a day, until ctx ends.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB) {
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)
	go func() {
		t := time.NewTicker(24 * time.Hour)
		defer t.Stop()
		for {
			RunCleanup(ctx, db, ttlDays)
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

func RunCleanup(ctx context.Context, db *gorm.DB, ttlDays int) {
	log.Println("[CLEANUP] purging token_blacklist...")
	deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

	var total int
	for {
		var expired []model.TokenBlacklist
		if err := db.WithContext(ctx).
			Where("expired_at < ?", deleteBefore).
			Limit(cleanupBatch).
			Find(&expired).Error; err != nil {
			log.Printf("[CLEANUP ERROR] load expired tokens: %v", err)
			return
		}
		if len(expired) == 0 {
			break
		}
		if err := db.WithContext(ctx).Unscoped().Delete(&expired).Error; err != nil {
			log.Printf("[CLEANUP ERROR] delete tokens: %v", err)
			return
		}
		total += len(expired)
		if len(expired) < cleanupBatch {
			break
		}
	}
	log.Printf("[CLEANUP] %d blacklisted tokens removed", total)

	if n, err := authRepo.CleanupExpiredRefreshTokens(ctx, db); err != nil {
		log.Printf("[CLEANUP ERROR] refresh tokens: %v", err)
	} else if n > 0 {
		log.Printf("[CLEANUP] %d expired refresh tokens removed", n)
	}
}
