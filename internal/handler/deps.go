package handler

import (
	"roomchat/internal/app/chat"
	"roomchat/internal/app/feed"
	"roomchat/internal/configs"
	"roomchat/internal/pkg/limiter"
)

// AppDeps carries everything the handlers need. The Store is the only owner of chat state.
type AppDeps struct {
	Store   *chat.Store
	Feed    *feed.Hub
	Limiter *limiter.IPRateLimiter
	Config  *configs.AppConfig
}
