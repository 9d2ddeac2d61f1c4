package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/curato/curation-client/internal/core/domain"
)

var (
	errMalformedToken = errors.New("token: expected three segments")
	errEmptyPayload   = errors.New("token: payload is not an object")
)

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeToken reads the identity from the middle segment of a bearer token.
// The signature is not verified; the backend is the authority on validity.
func DecodeToken(token string) (*domain.Identity, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return nil, errMalformedToken
	}
	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("token: decode payload: %w", err)
	}

	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	if claims == nil {
		return nil, errEmptyPayload
	}

	return &domain.Identity{
		ID:        stringClaim(claims, "id"),
		LegacyID:  stringClaim(claims, "_id"),
		Username:  stringClaim(claims, "username"),
		Email:     stringClaim(claims, "email"),
		FullName:  stringClaim(claims, "fullName"),
		Avatar:    stringClaim(claims, "avatar"),
		IssuedAt:  numericClaim(claims, "iat"),
		ExpiresAt: numericClaim(claims, "exp"),
		Claims:    claims,
	}, nil
}

func stringClaim(claims map[string]any, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}

func numericClaim(claims map[string]any, key string) int64 {
	if v, ok := claims[key].(float64); ok {
		return int64(v)
	}
	return 0
}
