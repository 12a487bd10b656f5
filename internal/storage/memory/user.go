package memory

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/VitaminP8/articlery/internal/config"
	"github.com/VitaminP8/articlery/internal/model"
	"github.com/VitaminP8/articlery/internal/user"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	mu        sync.Mutex
	users     map[string]*model.User
	emails    map[string]string // email -> username
	passwords map[string]string
	nextId    int
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:     make(map[string]*model.User),
		emails:    make(map[string]string),
		passwords: make(map[string]string),
		nextId:    1,
	}
}

func (s *UserMemoryStorage) RegisterUser(username, email, password string) (*model.User, error) {
	if err := user.ValidateRegistration(username, email, password); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.users[username]
	if exists {
		return nil, fmt.Errorf("%w: user %s already exists", model.ErrValidation, username)
	}
	if _, exists := s.emails[email]; exists {
		return nil, fmt.Errorf("%w: email %s already registered", model.ErrValidation, email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := strconv.Itoa(s.nextId)
	s.nextId++

	u := &model.User{
		ID:       id,
		Username: username,
		Email:    email,
	}

	s.users[username] = u
	s.emails[email] = username
	s.passwords[username] = string(hashedPassword)

	return u, nil
}

func (s *UserMemoryStorage) LoginUser(username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[username]
	if !exists {
		return "", fmt.Errorf("%w: user %s not found", model.ErrNotFound, username)
	}

	hashedPassword, ok := s.passwords[username]
	if !ok {
		return "", fmt.Errorf("%w: password for user %s not found", model.ErrNotFound, username)
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return "", fmt.Errorf("%w: invalid password or username", model.ErrUnauthenticated)
	}

	// достаем из .env jwtSecret
	jwtSecret := config.GetEnv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET is not set in environment")
	}

	userIDInt, err := strconv.Atoi(u.ID)
	if err != nil {
		return "", fmt.Errorf("invalid user id: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userIDInt,
		"username": u.Username,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
