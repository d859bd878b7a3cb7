package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/util"
)

const RoleAdmin = "admin"

// JWTClaim is the access-token payload issued by the identity service. This
// API only verifies tokens; it never issues them.
type JWTClaim struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Validate a signed jwt auth token and its expiration time.
func ValidateToken(signedToken string) (JWTClaim, error) {
	jwtKey := util.LoadEnvFor("SECRET")
	token, err := jwt.ParseWithClaims(
		signedToken,
		&JWTClaim{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtKey), nil
		},
	)
	if err != nil {
		return JWTClaim{}, err
	}

	claim, ok := token.Claims.(*JWTClaim)
	if !ok {
		return JWTClaim{}, errors.New("couldn't parse claims")
	}
	exp, _ := claim.GetExpirationTime()
	if exp == nil || exp.Local().Unix() < time.Now().Local().Unix() {
		return JWTClaim{}, errors.New("token expired")
	}

	return *claim, nil
}

// Extract and validate the jwt auth token on a request.
func InitJwtClaim(c *gin.Context) (JWTClaim, error) {
	return ValidateToken(ExtractToken(c))
}

// Get user object ID from JWTClaim.
func (j JWTClaim) GetUserObjectId() (primitive.ObjectID, error) {
	userId, err := primitive.ObjectIDFromHex(j.Id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return userId, nil
}

func (j JWTClaim) IsAdmin() bool {
	return j.Role == RoleAdmin
}

// Extract authorization token from request header.
func ExtractToken(c *gin.Context) string {
	tokenString := c.GetHeader("Authorization")
	return strings.TrimPrefix(tokenString, "Bearer ")
}
