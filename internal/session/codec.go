package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sentinel/sentinel/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
)

// Codec converts the session identity to and from its stored form
type Codec interface {
	Encode(user domain.User) ([]byte, error)
	Decode(data []byte) (domain.User, error)
}

// JSONCodec stores the identity as a plain JSON document
type JSONCodec struct{}

func (JSONCodec) Encode(user domain.User) ([]byte, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session identity: %w", err)
	}
	return data, nil
}

func (JSONCodec) Decode(data []byte) (domain.User, error) {
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return domain.User{}, fmt.Errorf("failed to decode session identity: %w", err)
	}
	if user.ID == "" {
		return domain.User{}, fmt.Errorf("failed to decode session identity: missing id")
	}
	return user, nil
}

// identityClaims carries the user record inside a signed token
type identityClaims struct {
	User domain.User `json:"user"`
	jwt.RegisteredClaims
}

// JWTCodec stores the identity as an HS256-signed token so a tampered
// value is rejected on load.
type JWTCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTCodec creates a signed codec. A zero ttl issues tokens without expiry.
func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	return &JWTCodec{
		secret: []byte(secret),
		issuer: "sentinel",
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *JWTCodec) Encode(user domain.User) ([]byte, error) {
	now := c.now()
	claims := identityClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID,
			Issuer:   c.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return []byte(signed), nil
}

func (c *JWTCodec) Decode(data []byte) (domain.User, error) {
	var claims identityClaims
	token, err := jwt.ParseWithClaims(string(data), &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithIssuer(c.issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.User{}, ErrTokenExpired
		}
		return domain.User{}, ErrInvalidToken
	}
	if !token.Valid || claims.User.ID == "" || claims.Subject != claims.User.ID {
		return domain.User{}, ErrInvalidToken
	}

	return claims.User, nil
}
