package auth

import (
	"context"

	"github.com/ariefcatur/fastfood-backend.git/internal/users"
)

// UserResolver mapping claim yang sudah valid ke record user.
type UserResolver interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetByTgID(ctx context.Context, tgID string) (*users.User, error)
}

type Authenticator struct {
	Tokens *TokenService
	Users  UserResolver
}

// Authenticate: verifikasi token lalu resolve identitasnya.
// email dipakai duluan; tg_id cuma kalau email gak ada di claim.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*users.User, error) {
	claim, err := a.Tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	var u *users.User
	if claim.Email != "" {
		u, err = a.Users.GetByEmail(ctx, claim.Email)
	} else {
		u, err = a.Users.GetByTgID(ctx, claim.TgID)
	}
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// AuthenticatePassword buat login web: cek password terhadap hash tersimpan.
func (a *Authenticator) AuthenticatePassword(ctx context.Context, email, password string) (*users.User, error) {
	u, err := a.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.HashedPassword == nil {
		return nil, ErrInvalidCredentials
	}
	if !VerifyPassword(password, *u.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
