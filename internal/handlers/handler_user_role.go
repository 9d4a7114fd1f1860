package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
	"github.com/ganpathioverseas/erp_finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userRoleHandler handles finance role assignments
type userRoleHandler struct {
	roleService portssvc.RoleManagerSvc
}

func registerUserRoleRoutes(rg *gin.RouterGroup, roleService portssvc.RoleManagerSvc) {
	h := &userRoleHandler{roleService: roleService}

	users := rg.Group("/users")
	{
		users.PUT("/:userID/role", h.assignRole)
	}
}

// assignRole godoc
// @Summary Assign a finance role
// @Description Sets the finance role of a user. Only admins may assign roles.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param role body dto.AssignRoleRequest true "Role"
// @Success 200 {object} dto.UserRoleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to assign role"
// @Security BearerAuth
// @Router /users/{userID}/role [put]
func (h *userRoleHandler) assignRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actingUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	targetUserID := c.Param("userID")

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for assignRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	assignment, err := h.roleService.AssignRole(c.Request.Context(), actingUserID, targetUserID, domain.UserRole(req.Role))
	if err != nil {
		respondError(c, logger, err, "Failed to assign role")
		return
	}
	logger.Info("Role assigned", slog.String("target_user_id", targetUserID), slog.String("role", req.Role))
	c.JSON(http.StatusOK, dto.ToUserRoleResponse(assignment))
}
