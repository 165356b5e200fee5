package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/wicaksonoadi/magiclink-service/internal/auth/domain"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/dto"
	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
	"github.com/wicaksonoadi/magiclink-service/pkg/constant"
)

// MagicLinkService sequences the two user-facing operations: requesting a
// sign-in link and redeeming the token it carries.
type MagicLinkService struct {
	tokens  *TokenStore
	limiter *RateLimiter
	mailer  domain.Mailer
	baseURL string
}

func NewMagicLinkService(tokens *TokenStore, limiter *RateLimiter, mailer domain.Mailer, baseURL string) *MagicLinkService {
	return &MagicLinkService{
		tokens:  tokens,
		limiter: limiter,
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// RequestLink validates the address, applies both rate-limit scopes, issues
// a token and emails the link. The limiter is marked only after the send
// succeeded, so a transient mail-provider failure does not consume the
// caller's window.
func (s *MagicLinkService) RequestLink(ctx context.Context, input dto.MagicLinkInput) error {
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return err
	}

	if err := s.limiter.Check(ctx, constant.ScopeIP, input.IPAddress); err != nil {
		return err
	}
	if err := s.limiter.Check(ctx, constant.ScopeEmail, email); err != nil {
		return err
	}

	token, err := s.tokens.Issue(ctx, email)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/auth/callback?token=%s", s.baseURL, token)
	if err := s.mailer.SendMagicLink(ctx, email, link); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}

	s.limiter.Mark(ctx, constant.ScopeIP, input.IPAddress)
	s.limiter.Mark(ctx, constant.ScopeEmail, email)

	slog.Info("magic link issued", "email", email)

	return nil
}

// Redeem exchanges a token for the email it authorizes. The token is
// consumed: a second call with the same value fails.
func (s *MagicLinkService) Redeem(ctx context.Context, token string) (string, error) {
	return s.tokens.Redeem(ctx, token)
}

// NormalizeEmail validates the address syntax and case-folds it so rate
// limiting and token binding see one canonical form.
func NormalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" || len(email) > constant.MaxEmailLength {
		return "", autherror.ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", autherror.ErrInvalidEmail
	}

	return strings.ToLower(email), nil
}
