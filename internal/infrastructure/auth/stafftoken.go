// Package auth verifies staff identity tokens issued by the host platform
// and hashes portal PINs. Token issuance is the host's concern; only the
// debug-mode login endpoint mints tokens locally.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
)

// StaffClaims is the claim set the host platform puts in staff tokens.
type StaffClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type StaffTokenService struct {
	secret []byte
	issuer string
}

func NewStaffTokenService(secret, issuer string) *StaffTokenService {
	return &StaffTokenService{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Generate mints a staff token locally. Debug-mode convenience only; in
// production the host platform issues tokens with the shared secret.
func (s *StaffTokenService) Generate(userID uint, role capability.Role, ttl time.Duration) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now().UTC()
	claims := &StaffClaims{
		UserID: userID,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign staff token: %w", err)
	}
	return signed, nil
}

func (s *StaffTokenService) Verify(tokenString string) (*StaffClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse staff token: %w", err)
	}

	claims, ok := token.Claims.(*StaffClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid staff token")
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("staff token missing user id")
	}
	if !capability.Role(claims.Role).IsValid() {
		return nil, fmt.Errorf("staff token carries unknown role: %s", claims.Role)
	}

	return claims, nil
}

// VerifyAdmin re-verifies a host token for the portal admin override. The
// result is never cached; every privileged portal call pays this check.
func (s *StaffTokenService) VerifyAdmin(ctx context.Context, hostToken string) (bool, error) {
	claims, err := s.Verify(hostToken)
	if err != nil {
		return false, nil
	}

	role := capability.Role(claims.Role)
	return role == capability.RoleAdministrator || role == capability.RoleSuperAdmin, nil
}
