package global

import (
	"sync"

	"qam-observer/pkg/config"
	"qam-observer/pkg/logger"
	"qam-observer/pkg/notify"
)

var (
	cfg      *config.Config
	log      *logger.Logger
	notifier *notify.NotifyService
	initOnce sync.Once
	mu       sync.RWMutex
)

func InitGlobals(config *config.Config, logger *logger.Logger) {
	initOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		cfg = config
		log = logger
		notifier = notify.NewNotifyService(config.GetNotifyCommand(), logger)
	})
}

// ReplaceConfig swaps the config after a reload. The notifier is
// rebuilt so a changed notify command takes effect.
func ReplaceConfig(config *config.Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = config
	notifier = notify.NewNotifyService(config.GetNotifyCommand(), log)
}

// GetConfig returns the global config instance
func GetConfig() *config.Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetLogger returns the global logger instance
func GetLogger() *logger.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// GetNotifier returns the global notifier instance
func GetNotifier() *notify.NotifyService {
	mu.RLock()
	defer mu.RUnlock()
	return notifier
}
