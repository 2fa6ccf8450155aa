package token

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 24 * time.Hour

// jwtSigner implements Signer for any JWT signing method. The verify key
// equals the sign key for HMAC and is the public half for RSA.
type jwtSigner struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	issuer    string
	ttl       time.Duration
}

// NewHS256Signer returns a Signer using a symmetric secret.
func NewHS256Signer(secret []byte, issuer string, ttl time.Duration) Signer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &jwtSigner{
		method:    jwt.SigningMethodHS256,
		signKey:   secret,
		verifyKey: secret,
		issuer:    issuer,
		ttl:       ttl,
	}
}

// NewRS256Signer returns a Signer using an RSA keypair.
func NewRS256Signer(priv *rsa.PrivateKey, pub *rsa.PublicKey, issuer string, ttl time.Duration) Signer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &jwtSigner{
		method:    jwt.SigningMethodRS256,
		signKey:   priv,
		verifyKey: pub,
		issuer:    issuer,
		ttl:       ttl,
	}
}

// LoadRS256Signer reads a PEM keypair from disk and returns an RS256 Signer.
func LoadRS256Signer(privateKeyFile, publicKeyFile, issuer string, ttl time.Duration) (Signer, error) {
	privPEM, err := os.ReadFile(privateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	priv, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	pubPEM, err := os.ReadFile(publicKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return NewRS256Signer(priv, pub, issuer, ttl), nil
}

func (s *jwtSigner) Issue(userID, roleName string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: roleName,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtSigner) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.verifyKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, mapJWTError(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, ErrMalformedClaims
	}
	return claims, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenInvalidSignature
	default:
		return ErrTokenMalformed
	}
}
