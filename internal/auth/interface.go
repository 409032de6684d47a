package auth

// JWTVerifier defines the interface for JWT token verification.
// The middleware only depends on this, not on how keys are obtained.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*SupabaseClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
