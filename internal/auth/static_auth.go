package auth

import "context"

// StaticAuthenticator accepts any mlk_ key. Development and single-tenant
// deployments only.
type StaticAuthenticator struct{}

func NewStaticAuthenticator() *StaticAuthenticator {
	return &StaticAuthenticator{}
}

func (a *StaticAuthenticator) Authenticate(_ context.Context, apiKey string) (*ProjectContext, error) {
	if len(apiKey) < 8 {
		return nil, ErrUnauthenticated
	}
	return &ProjectContext{
		ProjectID: "static-" + apiKey[:8],
		FailOpen:  true,
	}, nil
}
