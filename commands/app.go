package commands

import (
	"fmt"
	"time"

	"github.com/javaloayza/postboard/config"
	"github.com/javaloayza/postboard/gateway"
	"github.com/javaloayza/postboard/reconcile"
	"github.com/javaloayza/postboard/storage"
	"github.com/javaloayza/postboard/store"
	"github.com/javaloayza/postboard/utils"
)

// app is the wired object graph shared by every command.
type app struct {
	cfg    config.AppConfig
	slots  storage.Slots
	engine *reconcile.Engine
}

// bootstrap loads configuration, initializes logging and opens local storage.
func bootstrap(opts *RootOptions) (*app, error) {
	var cfg config.AppConfig
	if opts.ConfigPath != "" {
		cfg = config.LoadFrom(opts.ConfigPath)
	} else {
		cfg = config.Load()
	}

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	slots, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}

	local := store.NewLocalStore(slots, store.Keys{Posts: cfg.SlotPostsKey, Deleted: cfg.SlotDeletedKey})
	remote := gateway.NewClientFromConfig(cfg)
	engine := reconcile.NewEngine(remote, local, cfg.CurrentUserID)

	utils.S().Debugw("postboard ready",
		"storage", cfg.StorageDriver,
		"remote", cfg.RemoteBaseURL,
		"currentUserId", cfg.CurrentUserID,
	)
	return &app{cfg: cfg, slots: slots, engine: engine}, nil
}

func (a *app) debounce() time.Duration {
	return time.Duration(a.cfg.SearchDebounceMs) * time.Millisecond
}

func (a *app) Close() {
	if err := a.slots.Close(); err != nil {
		utils.S().Warnw("close storage", "error", err)
	}
	if utils.Logger != nil {
		_ = utils.Logger.Sync()
	}
}
