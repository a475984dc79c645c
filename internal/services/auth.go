package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"pahnawa/internal/domain"
	"pahnawa/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TTL: 24 * time.Hour}
}

// Login checks credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"name": u.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(s.TTL).Unix(),
	})
	signed, err := tok.SignedString(s.Secret)
	if err != nil {
		return "", nil, err
	}
	return signed, u, nil
}

// Claims is the authenticated identity carried by a bearer token.
type Claims struct {
	UserID string
	Role   string
	Name   string
}

// Parse validates a bearer token and returns its identity claims.
func (s *AuthService) Parse(tokenString string) (*Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return nil, ErrBadCreds
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrBadCreds
	}
	sub, _ := mc["sub"].(string)
	role, _ := mc["role"].(string)
	name, _ := mc["name"].(string)
	if sub == "" {
		return nil, ErrBadCreds
	}
	return &Claims{UserID: sub, Role: role, Name: name}, nil
}
