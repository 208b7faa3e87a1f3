package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/prompt-rewards-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/prompt-rewards-api/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID  = "userID"
	ContextKeyIsStaff = "isStaff"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errStaffOnly    = errors.New("staff only")
)

type Authenticator struct {
	signingKey string
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
	}
}

// VerifyJWT parses the bearer token and stores its claims on the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			ctx.Abort()
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			ctx.Abort()
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Set(ContextKeyIsStaff, claims.IsStaff)
		ctx.Next()
	}
}

// RequireStaff must run after VerifyJWT.
func RequireStaff() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !ctx.GetBool(ContextKeyIsStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(errStaffOnly))
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
