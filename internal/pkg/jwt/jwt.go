package jwt

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(p auth.Principal) (token string, expiresAt int64, err error)
	ValidateAccessToken(tokenString string) (auth.Principal, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

// GenerateAccessToken mints an access token for p. Issuing tokens belongs to the
// identity service; this exists for the dev token CLI and tests.
func (j *JWTService) GenerateAccessToken(p auth.Principal) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := p.Claims()
	claims["exp"] = expiresAt

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ValidateAccessToken verifies tokenString and returns the principal it carries.
func (j *JWTService) ValidateAccessToken(tokenString string) (auth.Principal, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get(auth.ClaimType)
	if !ok || tokenType != auth.TokenTypeAccess {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	return auth.PrincipalFromClaims(claims)
}
