package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of every issued access token.
const TokenTTL = time.Hour

// ErrInvalidToken is returned by Verify for any token that fails
// signature, format, or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Issue signs the given claims with the server secret. The claims are
// taken as-is from the login payload; expiry and issued-at are added on
// top. Expected to carry at least an "email" claim, but not enforced.
func Issue(secret string, claims map[string]interface{}) (string, error) {
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	now := time.Now()
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(TokenTTL).Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return t.SignedString([]byte(secret))
}

// Verify validates signature and expiry and returns the decoded claims.
// Any failure collapses to ErrInvalidToken; callers only need to know
// the bearer is not trustworthy.
func Verify(secret, raw string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
