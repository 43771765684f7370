package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opjlab/opj-backend/internal/response"
	"github.com/opjlab/opj-backend/internal/service"
)

// EnforceDailyQuota counts one document open per request against the free
// tier's daily allowance. Premium accounts pass through uncounted.
func EnforceDailyQuota(accessService *service.AccessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		allowed, err := accessService.ConsumeDailyQuota(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		if !allowed {
			response.AbortFail(c, http.StatusForbidden, response.ErrQuotaExceeded)
			return
		}

		c.Next()
	}
}
