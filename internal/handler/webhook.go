package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/socialhook/support-bot/internal/telegram"
)

// Dispatcher is what the webhook hands decoded updates to.
type Dispatcher interface {
	Dispatch(upd telegram.Update)
}

// Webhook receives Telegram updates in webhook mode. Telegram retries
// non-200 responses, so a well-formed update is always acknowledged
// immediately and handled asynchronously. When secret is non-empty the
// post must carry it in X-Telegram-Bot-Api-Secret-Token; anything else
// is a forgery and gets 401.
func Webhook(d Dispatcher, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret != "" && c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != secret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		var upd telegram.Update
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
			return
		}
		d.Dispatch(upd)
		c.Status(http.StatusOK)
	}
}
