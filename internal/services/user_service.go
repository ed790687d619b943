package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/models"
	"github.com/socialee/socialee/pkg/email"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var usernameRegex = regexp.MustCompile(`^[a-z0-9_.]{3,30}$`)

// userStore is the slice of the user repository this service needs.
type userStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) error
	AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
	RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
	GetFollowerIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
}

// followNotifier alerts a user about a new follower.
type followNotifier interface {
	NotifyFollow(followedID, followerID primitive.ObjectID, followerName string)
}

// UserService encapsulates the business logic for accounts and the follow graph.
type UserService struct {
	repo          userStore
	notifications followNotifier
	frontendURL   string
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo userStore, notifications followNotifier, frontendURL string) *UserService {
	return &UserService{
		repo:          repo,
		notifications: notifications,
		frontendURL:   frontendURL,
	}
}

// RegisterUser registers a new user after hashing their password.
func (s *UserService) RegisterUser(ctx context.Context, name, username, userEmail, password string) (*models.User, error) {
	logrus.Info("Registering new user")

	if name == "" || username == "" || userEmail == "" || password == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, fmt.Errorf("missing required user fields")
	}

	if !emailRegex.MatchString(userEmail) {
		logrus.WithField("email", userEmail).Warn("Invalid email format during registration")
		return nil, fmt.Errorf("invalid email format")
	}

	if !usernameRegex.MatchString(username) {
		return nil, fmt.Errorf("username must be 3-30 lowercase letters, digits, '_' or '.'")
	}

	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	// Uniqueness checks; the unique indexes are the backstop.
	if existing, _ := s.repo.GetUserByEmail(ctx, userEmail); existing != nil {
		logrus.WithField("email", userEmail).Warn("Email already in use")
		return nil, fmt.Errorf("email already in use")
	}
	if existing, _ := s.repo.GetUserByUsername(ctx, username); existing != nil {
		return nil, fmt.Errorf("username already taken")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:           name,
		Username:       username,
		Email:          userEmail,
		HashedPassword: string(hashedPwd),
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	logrus.WithField("userID", createdUser.ID.Hex()).Info("User registered successfully")
	return createdUser, nil
}

// AuthenticateUser verifies the email and password and returns the user if
// credentials are valid.
func (s *UserService) AuthenticateUser(ctx context.Context, userEmail, password string) (*models.User, error) {
	logrus.WithField("email", userEmail).Info("Authenticating user")

	user, err := s.repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		logrus.WithField("email", userEmail).Warn("User not found")
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", userEmail).Warn("Invalid credentials")
		return nil, fmt.Errorf("invalid credentials")
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, current, updated string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(current)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	if len(updated) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	update := map[string]interface{}{
		"hashed_password": string(hashedPwd),
		"updated_at":      time.Now(),
	}
	if err := s.repo.UpdateUser(ctx, userID, update); err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}
	return nil
}

// RequestPasswordReset emails a one-hour reset link to the account owner.
func (s *UserService) RequestPasswordReset(ctx context.Context, userEmail string) error {
	user, err := s.repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("no account found with this email")
	}

	resetToken := uuid.NewString()
	expiration := time.Now().Add(1 * time.Hour)

	update := map[string]interface{}{
		"reset_token":     resetToken,
		"reset_token_exp": expiration,
		"updated_at":      time.Now(),
	}
	if err := s.repo.UpdateUser(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to save reset token")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, resetToken)
	body := fmt.Sprintf("Click the link below to reset your Socialee password:\n\n%s", resetLink)

	if err := email.SendEmail(user.Email, "Reset Your Password", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %v", err)
	}

	logrus.Infof("Password reset email sent to %s", userEmail)
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.repo.GetUserByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token")
	}

	if time.Now().After(user.ResetTokenExp) {
		return fmt.Errorf("reset token has expired")
	}

	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	update := map[string]interface{}{
		"hashed_password": string(hashedPwd),
		"reset_token":     "",
		"reset_token_exp": time.Time{},
		"updated_at":      time.Now(),
	}
	if err := s.repo.UpdateUser(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}
	return nil
}

// GetUser retrieves a user by their hex ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}
	return s.repo.GetUserByID(ctx, objID)
}

// UpdateProfile applies a partial profile update (name, bio, picture).
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	allowed := map[string]bool{"name": true, "bio": true, "profile_picture": true}
	update := map[string]interface{}{"updated_at": time.Now()}
	for key, value := range updates {
		if allowed[key] {
			update[key] = value
		}
	}

	if err := s.repo.UpdateUser(ctx, userID, update); err != nil {
		return nil, fmt.Errorf("failed to update profile: %v", err)
	}
	return s.repo.GetUserByID(ctx, userID)
}

// Follow adds the actor to the target's followers. Following yourself or a
// user you already follow is rejected. The two sides of the graph are two
// independent writes with no cross-document atomicity.
func (s *UserService) Follow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID == targetID {
		return fmt.Errorf("cannot follow yourself")
	}

	actor, err := s.repo.GetUserByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to get user: %v", err)
	}

	if _, err := s.repo.GetUserByID(ctx, targetID); err != nil {
		return fmt.Errorf("user not found")
	}

	if actor.IsFollowing(targetID) {
		return fmt.Errorf("already following this user")
	}

	if err := s.repo.AddFollower(ctx, targetID, actorID); err != nil {
		return err
	}

	s.notifications.NotifyFollow(targetID, actorID, actor.Name)

	logrus.WithFields(logrus.Fields{
		"userID":   actorID.Hex(),
		"targetID": targetID.Hex(),
	}).Info("Follow recorded")
	return nil
}

// Unfollow removes the actor from the target's followers. Unfollowing a user
// you don't follow is a no-op, not an error.
func (s *UserService) Unfollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if actorID == targetID {
		return fmt.Errorf("cannot unfollow yourself")
	}

	if _, err := s.repo.GetUserByID(ctx, targetID); err != nil {
		return fmt.Errorf("user not found")
	}

	return s.repo.RemoveFollower(ctx, targetID, actorID)
}

// Followers lists the public profiles of everyone following the user.
func (s *UserService) Followers(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	ids, err := s.repo.GetFollowerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return s.resolvePublic(ctx, ids)
}

// Following lists the public profiles of everyone the user follows.
func (s *UserService) Following(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return s.resolvePublic(ctx, user.Following)
}

func (s *UserService) resolvePublic(ctx context.Context, ids []primitive.ObjectID) ([]models.PublicUser, error) {
	if len(ids) == 0 {
		return []models.PublicUser{}, nil
	}

	users, err := s.repo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]models.PublicUser, 0, len(users))
	for i := range users {
		results = append(results, users[i].Public())
	}
	return results, nil
}

// SearchUsers finds public profiles matching the query.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.PublicUser, error) {
	if query == "" {
		return []models.PublicUser{}, nil
	}

	users, err := s.repo.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]models.PublicUser, 0, len(users))
	for i := range users {
		results = append(results, users[i].Public())
	}
	return results, nil
}

// FeedAuthors returns the ids whose content fills the user's feeds: everyone
// they follow plus themselves.
func (s *UserService) FeedAuthors(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return append(user.Following, user.ID), nil
}
