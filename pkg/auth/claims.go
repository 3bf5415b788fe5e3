package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/leafline/leafline-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID         uuid.UUID
	ActiveVendorID *uuid.UUID
	Role           enums.ActorRole
	JTI            string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID         uuid.UUID       `json:"user_id"`
	ActiveVendorID *uuid.UUID      `json:"active_vendor_id,omitempty"`
	Role           enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
