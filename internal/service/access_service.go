package service

// AccessService gates every reporting operation behind the shared
// secret exchanged with the HR system. The stored key is injected at
// construction; there is no ambient configuration lookup.
type AccessService struct {
	apiKey string
}

// NewAccessService constructs the gate around the configured secret.
func NewAccessService(apiKey string) *AccessService {
	return &AccessService{apiKey: apiKey}
}

// Validate reports whether the submitted key matches the configured
// secret. A blank configured secret rejects everything.
func (s *AccessService) Validate(submitted string) bool {
	return s.apiKey != "" && submitted == s.apiKey
}
