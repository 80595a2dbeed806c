package application

import (
	"context"
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

type Service struct {
	registry Registry
}

func NewService(registry Registry) *Service {
	return &Service{registry: registry}
}

func (s *Service) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}

	added, err := s.registry.Add(ctx, email)
	if err != nil {
		return err
	}
	if !added {
		return ErrAlreadySubscribed
	}
	return nil
}
