package services

import (
	"context"
	"fmt"
	"strings"

	"chorequest/internal/engine"
	"chorequest/internal/models"
	"chorequest/internal/repositories"
)

// ToolView decorates a UserTool with the replacement hint.
type ToolView struct {
	models.UserTool
	NeedsReplacement bool `json:"needs_replacement"`
}

type ToolService interface {
	Create(ctx context.Context, tool *models.UserTool) (*models.UserTool, error)
	ListByUser(ctx context.Context, userID int64) ([]ToolView, error)
	// Replace resets durability to max and clears the use counter.
	Replace(ctx context.Context, id int64, userID int64) (*ToolView, error)
}

type toolService struct {
	repo repositories.ToolRepository
}

func NewToolService(repo repositories.ToolRepository) ToolService {
	return &toolService{repo: repo}
}

func toolViewOf(t *models.UserTool) ToolView {
	return ToolView{UserTool: *t, NeedsReplacement: t.NeedsReplacement()}
}

func (s *toolService) Create(ctx context.Context, tool *models.UserTool) (*models.UserTool, error) {
	tool.ToolID = strings.TrimSpace(strings.ToLower(tool.ToolID))
	if tool.ToolID == "" {
		return nil, fmt.Errorf("tool_id is required")
	}
	if strings.TrimSpace(tool.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if tool.MaxDurability <= 0 {
		return nil, fmt.Errorf("max_durability must be positive")
	}
	tool.CurrentDurability = tool.MaxDurability

	if err := s.repo.Store(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

func (s *toolService) ListByUser(ctx context.Context, userID int64) ([]ToolView, error) {
	tools, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]ToolView, 0, len(tools))
	for i := range tools {
		views = append(views, toolViewOf(&tools[i]))
	}
	return views, nil
}

func (s *toolService) Replace(ctx context.Context, id int64, userID int64) (*ToolView, error) {
	tool, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, engine.ErrNotFound
	}
	if tool.UserID != userID {
		return nil, engine.ErrNotOwner
	}

	tool.CurrentDurability = tool.MaxDurability
	tool.UsesCount = 0
	if err := s.repo.Update(ctx, tool); err != nil {
		return nil, err
	}
	v := toolViewOf(tool)
	return &v, nil
}
