package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"tipbot/internal/core/ports"
	"tipbot/pkg/apperror"
	"tipbot/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderTelegramSecret   = "X-Telegram-Bot-Api-Secret-Token"
	HeaderTwitterSignature = "X-Twitter-Webhooks-Signature"
)

// TelegramSecret checks the secret token Telegram echoes on every webhook
// call. An empty secret disables the check.
func TelegramSecret(secret string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		got := c.GetHeader(HeaderTelegramSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			log.Warn().Str("client_ip", c.ClientIP()).Msg("telegram webhook with bad secret token")
			response.Error(c, apperror.ErrInvalidSecretToken())
			c.Abort()
			return
		}
		c.Next()
	}
}

// TwitterSignature verifies X-Twitter-Webhooks-Signature against the raw
// body, signed with the app's consumer secret.
func TwitterSignature(sigSvc ports.SignatureService, consumerSecret string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bufferBody(c)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatus(http.StatusRequestEntityTooLarge)
				return
			}
			response.Error(c, apperror.ErrMalformedPayload(err))
			c.Abort()
			return
		}

		if !sigSvc.Verify(consumerSecret, raw, c.GetHeader(HeaderTwitterSignature)) {
			log.Warn().Str("client_ip", c.ClientIP()).Msg("twitter webhook with bad signature")
			response.Error(c, apperror.ErrInvalidSignature())
			c.Abort()
			return
		}
		c.Next()
	}
}
