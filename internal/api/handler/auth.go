package handler

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"govlens/backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	roleCitizen = "citizen"
	roleOfficer = "officer"
)

func jwtSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("govlens-demo-secret")
}

// generateToken issues a session JWT carrying the subject's id, display name
// and role.
func generateToken(subjectID, name, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subjectID,
		"name": name,
		"role": role,
		"exp":  time.Now().Add(config.TokenTTL).Unix(),
		"iss":  config.TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// parseToken validates a JWT and returns its claims.
func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// bearerToken extracts the Bearer token from the Authorization header, or
// falls back to a "token" query parameter (used by the WebSocket feed).
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[len("Bearer "):]
	}
	return c.Query("token")
}

// GetAnonID creates an anonymous citizen identity and returns its JWT.
func (h *Handler) GetAnonID(c *gin.Context) {
	anonID := uuid.New().String()

	token, err := generateToken(anonID, config.AnonymousCitizenName, roleCitizen)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "anon_id": anonID})
}

type officerLoginRequest struct {
	Name        string   `json:"name" binding:"required"`
	Designation string   `json:"designation"`
	Departments []string `json:"departments"`
}

// OfficerLogin registers the officer on first contact and returns an
// officer-role JWT. Demo credentialing: possession of the endpoint is the
// credential.
func (h *Handler) OfficerLogin(c *gin.Context) {
	var req officerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Officer name is required"})
		return
	}

	officer, err := h.Storage.SaveOfficerIfNotExists(req.Name, req.Designation, req.Departments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register officer"})
		return
	}

	token, err := generateToken(officer.ID, officer.Name, roleOfficer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "officer": officer})
}

// OfficerRequired guards officer-only routes and stores the officer's display
// name in the request context for the transition handler.
func (h *Handler) OfficerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		if role, _ := claims["role"].(string); role != roleOfficer {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Officer role required"})
			return
		}

		if name, _ := claims["name"].(string); name != "" {
			c.Set("officer_name", name)
		}
		c.Next()
	}
}
