package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("could not validate credentials")
	ErrTokenExpired       = errors.New("token expired")
)

// Claim adalah payload token yang sudah lolos verifikasi.
type Claim struct {
	Email     string
	TgID      string
	ExpiresAt time.Time
}

type verifier struct {
	issuer string
	key    []byte
}

// TokenService terbitin & verifikasi JWT HS256. Verifikasi nyoba dua secret
// berurutan: web dulu, lalu bot. Token yang ditandatangani issuer bot tetap
// diterima tanpa bot harus tahu secret web (dan sebaliknya).
type TokenService struct {
	signKey []byte
	chain   []verifier
}

func NewTokenService(secretKey, secretKeyBot string) *TokenService {
	return &TokenService{
		signKey: []byte(secretKey),
		chain: []verifier{
			{issuer: "web", key: []byte(secretKey)},
			{issuer: "bot", key: []byte(secretKeyBot)},
		},
	}
}

func (s *TokenService) IssueAccessToken(email, tgID string) (string, error) {
	return s.issue(email, tgID, AccessTokenTTL)
}

func (s *TokenService) IssueRefreshToken(email, tgID string) (string, error) {
	return s.issue(email, tgID, RefreshTokenTTL)
}

func (s *TokenService) issue(email, tgID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
	}
	if email != "" {
		claims["email"] = email
	}
	if tgID != "" {
		claims["tg_id"] = tgID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
}

// Verify jalanin chain verifier sesuai prioritas.
// Urutan penting: expired dengan signature valid langsung gagal
// ErrTokenExpired, TIDAK lanjut ke secret berikutnya. Signature invalid
// baru boleh jatuh ke verifier selanjutnya.
func (s *TokenService) Verify(token string) (Claim, error) {
	for _, v := range s.chain {
		claim, err := decodeHS256(token, v.key)
		if err == nil {
			if claim.Email == "" && claim.TgID == "" {
				return Claim{}, ErrInvalidCredentials
			}
			return claim, nil
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claim{}, ErrTokenExpired
		}
	}
	return Claim{}, ErrInvalidCredentials
}

func decodeHS256(token string, key []byte) (Claim, error) {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return Claim{}, err
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claim{}, jwt.ErrTokenInvalidClaims
	}

	var c Claim
	if v, ok := mc["email"].(string); ok {
		c.Email = v
	}
	if v, ok := mc["tg_id"].(string); ok {
		c.TgID = v
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
