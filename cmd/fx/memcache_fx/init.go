package memcache_fx

import (
	"go.uber.org/fx"
	"riderquiz/internal/config"
	mem "riderquiz/pkg/memcache"
)

var Module = fx.Provide(provideSessionStore)

func provideSessionStore(cfg *config.Config) (mem.SessionStore, error) {
	return mem.NewSessions(cfg.Session.Capacity, cfg.Session.TTL)
}
