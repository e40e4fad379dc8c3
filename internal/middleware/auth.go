package middleware

import (
  "net/http"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/requestdata"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/services"
)

const unauthorizedMessage = "Unauthorized Access!"

type AuthMiddleware struct {
  log      *logger.Logger
  verifier services.TokenVerifier
}

func NewAuthMiddleware(log *logger.Logger, verifier services.TokenVerifier) *AuthMiddleware {
  middlewareLogger := log.With("middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLogger, verifier: verifier}
}

// RequireAuth verifies the bearer token against the identity provider
// and puts the verified email on the request context. Nothing is
// cached between requests.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractBearerToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": unauthorizedMessage})
      return
    }
    if am.verifier == nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": unauthorizedMessage})
      return
    }
    email, err := am.verifier.Verify(c.Request.Context(), tokenString)
    if err != nil {
      am.log.Debug("Token verification failed", "error", err)
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": unauthorizedMessage})
      return
    }
    rd := &requestdata.RequestData{TokenString: tokenString, Email: email}
    c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
    c.Next()
  }
}

func extractBearerToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return ""
}
