package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/socialhook/support-bot/internal/handler"
)

// New builds the HTTP surface: health probes plus, when a dispatcher is
// given, the Telegram webhook receiver.
func New(dispatcher handler.Dispatcher, webhookEnabled bool, webhookSecret string) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)
	if webhookEnabled {
		r.POST("/telegram/webhook", handler.Webhook(dispatcher, webhookSecret))
	}
	return r
}
