package application

import (
	"context"
	"fmt"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/infrastructure/auth"
	"pulseboard-analytics-core/internal/ports"

	"github.com/rs/zerolog"
)

// AuthService handles registration, login and profile reads
type AuthService struct {
	userRepo      ports.UserRepository
	workspaceRepo ports.WorkspaceRepository
	tokens        ports.TokenService
	logger        zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo ports.UserRepository,
	workspaceRepo ports.WorkspaceRepository,
	tokens ports.TokenService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		workspaceRepo: workspaceRepo,
		tokens:        tokens,
		logger:        logger,
	}
}

// RegisterInput is the input for creating an account
type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	WorkspaceName string
}

// AuthResult carries a signed-in user, their active workspace and a bearer token
type AuthResult struct {
	User      *domain.User
	Workspace *domain.Workspace
	Token     string
}

// Register creates a user plus their default workspace and signs them in.
// Registering an email that already exists fails with ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	workspaceName := input.WorkspaceName
	if workspaceName == "" {
		workspaceName = fmt.Sprintf("%s's Workspace", input.Name)
	}
	workspace := &domain.Workspace{
		Name:    workspaceName,
		OwnerID: user.ID,
		Members: []domain.WorkspaceMember{
			{UserID: user.ID, Role: domain.RoleAdmin},
		},
		Settings: domain.WorkspaceSettings{Currency: "USD"},
	}
	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, err
	}

	user.WorkspaceIDs = append(user.WorkspaceIDs, workspace.ID)
	user.ActiveWorkspaceID = workspace.ID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("userId", user.ID).
		Str("workspaceId", workspace.ID).
		Msg("Registered new user")

	return &AuthResult{User: user, Workspace: workspace, Token: token}, nil
}

// Login verifies credentials and signs the user in. A bad email or password
// fails with ErrInvalidCredentials; the two cases are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	workspace, err := s.activeWorkspace(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Workspace: workspace, Token: token}, nil
}

// Profile returns the authenticated user with their active workspace resolved
func (s *AuthService) Profile(ctx context.Context, user *domain.User) (*AuthResult, error) {
	workspace, err := s.activeWorkspace(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Workspace: workspace}, nil
}

func (s *AuthService) activeWorkspace(ctx context.Context, user *domain.User) (*domain.Workspace, error) {
	if user.ActiveWorkspaceID == "" {
		return nil, nil
	}
	return s.workspaceRepo.GetByID(ctx, user.ActiveWorkspaceID)
}
