package config

import (
	"errors"
	"fmt"

	"github.com/simp-lee/jwt"
)

// SetupJWT creates a jwt.Service from the auth configuration. The caller is
// responsible for calling Close() on the returned service.
func SetupJWT(cfg *AuthConfig) (jwt.Service, error) {
	if cfg == nil {
		return nil, errors.New("auth config is nil")
	}

	svc, err := jwt.New(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return svc, nil
}
