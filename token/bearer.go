package token

// BearerToken wraps a verified raw token and its claims so the transport
// layer can expose them through the rest.AuthToken interface.
type BearerToken struct {
	raw    string
	claims *Claims
}

func NewBearerToken(raw string, claims *Claims) *BearerToken {
	return &BearerToken{raw: raw, claims: claims}
}

func (t *BearerToken) IsValid() bool {
	return t != nil && t.claims != nil
}

func (t *BearerToken) GetUserId() string {
	return t.claims.Subject
}

func (t *BearerToken) GetUserType() string {
	if len(t.claims.Roles) == 0 {
		return ""
	}
	return t.claims.Roles[0]
}

func (t *BearerToken) GetToken() string {
	return t.raw
}

func (t *BearerToken) GetExpiresAt() int64 {
	return t.claims.ExpiresAt.Unix()
}
