// Package tokens persists the session token across restarts.
package tokens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pdfnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pdfnotes/internal/common"
)

// Store reads and writes the single opaque token kept under common.TokenKey.
type Store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Token returns the persisted token, or "" when none is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return string(v), nil
}

// Save replaces the persisted token. An empty token clears it.
func (s *Store) Save(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Clear removes the persisted token. Clearing an absent token is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
