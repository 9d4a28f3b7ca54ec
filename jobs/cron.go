package jobs

import (
	"context"
	"time"

	"hotelbooking/constants"
	"hotelbooking/services/logger"

	"github.com/robfig/cron/v3"
)

// CachePurger xóa các key theo pattern, trả về số key đã xóa
type CachePurger interface {
	PurgePattern(ctx context.Context, pattern string) (int, error)
}

var cachePurger CachePurger

// SetCachePurger thiết lập implementation cho CachePurger
func SetCachePurger(p CachePurger) {
	cachePurger = p
}

// PurgeDayCaches xóa cache phòng và lịch vì "hôm nay" đã đổi
func PurgeDayCaches(ctx context.Context, p CachePurger, log logger.Logger) {
	if p == nil {
		return
	}
	for _, pattern := range []string{constants.CacheKeyRoom + "*", constants.CacheKeyCalendar + "*"} {
		n, err := p.PurgePattern(ctx, pattern)
		if err != nil {
			log.Error("purge %s: %v", pattern, err)
			continue
		}
		log.Info("purged %d keys %s", n, pattern)
	}
}

// InitCronJobs khởi tạo các cron jobs. c nên được tạo với múi giờ khách sạn.
func InitCronJobs(c *cron.Cron, log logger.Logger) error {
	if log == nil {
		log = logger.Discard
	}
	// Cron job chạy lúc 0h mỗi ngày
	_, err := c.AddFunc("0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		log.Info("Đang xóa cache phòng và lịch lúc: %v", time.Now())
		PurgeDayCaches(ctx, cachePurger, log)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}
