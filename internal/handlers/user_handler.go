package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"chorequest/internal/models"
	"chorequest/internal/services"
)

type UserHandler struct {
	userService    services.UserService
	profileService services.ProfileService
}

func NewUserHandler(userService services.UserService, profileService services.ProfileService) *UserHandler {
	return &UserHandler{userService: userService, profileService: profileService}
}

// @Summary      Register
// @Description  Creates the user with a level-1 profile, default areas and a starter toolkit
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      models.RegisterRequest  true  "Registration data"
// @Success      201   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		log.Printf("[user][register] email=%q: %v", req.Email, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary      Current user
// @Tags         Users
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), getUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Update display name
// @Tags         Users
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req struct {
		DisplayName string `json:"display_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.userService.UpdateDisplayName(c.Request.Context(), getUserID(c), req.DisplayName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// @Summary      Game profile
// @Description  Level, experience, currencies and streaks
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  services.ProfileView
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	view, err := h.profileService.Get(c.Request.Context(), getUserID(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
