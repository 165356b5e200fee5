package constant

const (
	TokenKeyPrefix = "token:"
	RateKeyPrefix  = "rate:"

	ScopeIP    = "ip"
	ScopeEmail = "email"

	SessionCookieName = "ml_session"

	// MaxEmailLength follows RFC 5321 (254 chars including the @).
	MaxEmailLength = 254
)
