package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"chorequest/internal/models"
	"chorequest/internal/repositories"
)

// defaultAreas are created for every new household.
var defaultAreas = []struct {
	areaType models.Category
	name     string
}{
	{models.CategoryKitchen, "Kitchen"},
	{models.CategoryBathroom, "Bathroom"},
	{models.CategoryBedroom, "Bedroom"},
	{models.CategoryLivingRoom, "Living Room"},
}

// starterTools are handed out on registration.
var starterTools = []struct {
	toolID, name string
	durability   int
}{
	{"sponge", "Sponge", 30},
	{"vacuum", "Vacuum Cleaner", 100},
	{"mop", "Mop", 50},
}

const defaultAreaHealth = 100

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateDisplayName(ctx context.Context, id int64, displayName string) error
	LinkTelegram(ctx context.Context, id int64, chatID int64) error
}

type userService struct {
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
	areas    repositories.AreaRepository
	tools    repositories.ToolRepository
	email    EmailService
	auth     AuthService
}

func NewUserService(
	users repositories.UserRepository,
	profiles repositories.ProfileRepository,
	areas repositories.AreaRepository,
	tools repositories.ToolRepository,
	email EmailService,
	auth AuthService,
) UserService {
	return &userService{
		users:    users,
		profiles: profiles,
		areas:    areas,
		tools:    tools,
		email:    email,
		auth:     auth,
	}
}

// Register creates the user with a level-1 profile, default home areas and a
// starter toolkit. The profile is required; area/tool seeding and the welcome
// email are best-effort.
func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &models.UserProfile{UserID: user.ID, Level: 1}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("bootstrap profile: %w", err)
	}

	for _, a := range defaultAreas {
		area := &models.HomeArea{
			UserID:        user.ID,
			AreaType:      a.areaType,
			Name:          a.name,
			CurrentHealth: defaultAreaHealth,
			MaxHealth:     defaultAreaHealth,
		}
		if err := s.areas.Store(ctx, area); err != nil {
			log.Printf("[user][register][warn] seed area %q for userID=%d: %v", a.areaType, user.ID, err)
		}
	}
	for _, t := range starterTools {
		tool := &models.UserTool{
			UserID:            user.ID,
			ToolID:            t.toolID,
			Name:              t.name,
			CurrentDurability: t.durability,
			MaxDurability:     t.durability,
		}
		if err := s.tools.Store(ctx, tool); err != nil {
			log.Printf("[user][register][warn] seed tool %q for userID=%d: %v", t.toolID, user.ID, err)
		}
	}

	if s.email != nil {
		if err := s.email.SendWelcomeEmail(user.Email, user.DisplayName); err != nil {
			// warn but do not fail registration
			log.Printf("[user][register][warn] welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *userService) UpdateDisplayName(ctx context.Context, id int64, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return fmt.Errorf("display name is required")
	}
	return s.users.UpdateDisplayName(ctx, id, displayName)
}

func (s *userService) LinkTelegram(ctx context.Context, id int64, chatID int64) error {
	return s.users.SetTelegramChat(ctx, id, chatID)
}
