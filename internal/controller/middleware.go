package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examadmin/internal/apperr"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/service"
)

const contextUserIDKey = "userID"

// RequireAuth validates the bearer token and stores the authenticated user id
// in the request context. Every creator-facing route sits behind it.
func RequireAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authorization token required"})
			return
		}
		userID, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: apperr.PublicMessage(err)})
			return
		}
		ctx.Set(contextUserIDKey, userID)
		ctx.Next()
	}
}

func currentUserID(ctx *gin.Context) uint {
	v, _ := ctx.Get(contextUserIDKey)
	id, _ := v.(uint)
	return id
}
