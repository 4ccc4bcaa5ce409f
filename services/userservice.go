package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tasktracker/model"
	"tasktracker/store"
)

const invalidCredentials = "Invalid email or password"

type SignupInput struct {
	Email    string `validate:"required,max=254,email" label:"Email"`
	Name     string `validate:"required" label:"Name"`
	Password string `validate:"required,min=6" label:"Password"`
}

type UserService struct {
	store  store.Store
	tokens *TokenService
	cost   int
	newID  func() string

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(s store.Store, tokens *TokenService) *UserService {
	return &UserService{
		store:  s,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
		newID:  uuid.NewString,
	}
}

// Signup registers a new user and returns it with a fresh token.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (model.PublicUser, string, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return model.PublicUser{}, "", err
	}

	// Hash before taking the store lock; bcrypt is slow on purpose.
	hash, err := HashPassword(in.Password, s.cost)
	if err != nil {
		return model.PublicUser{}, "", err
	}

	user := model.User{
		ID:           s.newID(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
	}
	err = s.store.Update(ctx, func(d *store.Dataset) error {
		if findUserByEmail(d.Users, user.Email) >= 0 {
			return validationError("Email already registered")
		}
		d.Users = append(d.Users, user)
		return nil
	})
	if err != nil {
		return model.PublicUser{}, "", err
	}

	token, err := s.tokens.Issue(user.Public())
	if err != nil {
		return model.PublicUser{}, "", err
	}
	return user.Public(), token, nil
}

// Signin checks credentials. An unknown email and a wrong password fail the
// same way.
func (s *UserService) Signin(ctx context.Context, email, password string) (model.PublicUser, string, error) {
	if email == "" || password == "" {
		return model.PublicUser{}, "", validationError("Email and password are required")
	}

	d, err := s.store.Read(ctx)
	if err != nil {
		return model.PublicUser{}, "", err
	}

	i := findUserByEmail(d.Users, email)
	if i < 0 {
		// Burn the same bcrypt work as a real comparison.
		VerifyPassword(password, s.placeholderHash())
		return model.PublicUser{}, "", unauthorizedError(invalidCredentials)
	}
	user := d.Users[i]
	if !VerifyPassword(password, user.PasswordHash) {
		return model.PublicUser{}, "", unauthorizedError(invalidCredentials)
	}

	token, err := s.tokens.Issue(user.Public())
	if err != nil {
		return model.PublicUser{}, "", err
	}
	return user.Public(), token, nil
}

// Me resolves the user a token was issued to.
func (s *UserService) Me(ctx context.Context, claims *model.Claims) (model.PublicUser, error) {
	d, err := s.store.Read(ctx)
	if err != nil {
		return model.PublicUser{}, err
	}
	for _, u := range d.Users {
		if u.ID == claims.UserID {
			return u.Public(), nil
		}
	}
	return model.PublicUser{}, unauthorizedError("Invalid token")
}

func (s *UserService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("placeholder-password"), s.cost)
		if err == nil {
			s.dummyHash = string(hash)
		}
	})
	return s.dummyHash
}

// findUserByEmail is an exact, case-sensitive match.
func findUserByEmail(users []model.User, email string) int {
	for i, u := range users {
		if u.Email == email {
			return i
		}
	}
	return -1
}
