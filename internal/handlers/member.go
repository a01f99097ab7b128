package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dmitriina1/AnalogueJira/db"
	"github.com/dmitriina1/AnalogueJira/internal/access"
	"github.com/dmitriina1/AnalogueJira/internal/models"
	"github.com/dmitriina1/AnalogueJira/internal/types"
	"github.com/dmitriina1/AnalogueJira/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MemberResponse struct {
	ID       uint               `json:"id"`
	User     types.UserResponse `json:"user"`
	Role     string             `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func ListMembers(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectRole(ctx, projectID, ""); !ok {
		return
	}

	var members []models.ProjectMember

	if err := db.DB.Preload("User").Where("project_id = ?", projectID).Order("created_at").Find(&members).Error; err != nil {
		log.Printf("Failed to list members for project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	response := make([]MemberResponse, 0, len(members))

	for _, member := range members {
		response = append(response, MemberResponse{
			ID: member.ID,
			User: types.UserResponse{
				ID:        member.User.ID,
				Username:  member.User.Username,
				Email:     member.User.Email,
				AvatarURL: member.User.AvatarURL,
			},
			Role:     member.Role,
			JoinedAt: member.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateMemberRole(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetUserID, err := utils.IDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectRole(ctx, projectID, access.RoleAdmin); !ok {
		return
	}

	var body UpdateMemberRoleRequest

	if err := ctx.BindJSON(&body); err != nil || !access.Role(body.Role).Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var member models.ProjectMember

	if err := db.DB.Where("project_id = ? AND user_id = ?", projectID, targetUserID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			log.Printf("Failed to load member: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if member.Role == string(access.RoleAdmin) && body.Role != string(access.RoleAdmin) {
		if lastAdmin(projectID) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project must keep at least one admin"})
			return
		}
	}

	member.Role = body.Role

	if err := db.DB.Save(&member).Error; err != nil {
		log.Printf("Failed to update member role: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Role updated", "role": member.Role})
}

func RemoveMember(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetUserID, err := utils.IDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currentUserID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// Members may leave on their own; removing anybody else takes admin.
	required := access.RoleAdmin
	if targetUserID == currentUserID {
		required = ""
	}

	if _, ok := requireProjectRole(ctx, projectID, required); !ok {
		return
	}

	var member models.ProjectMember

	if err := db.DB.Where("project_id = ? AND user_id = ?", projectID, targetUserID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		} else {
			log.Printf("Failed to load member: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if member.Role == string(access.RoleAdmin) && lastAdmin(projectID) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project must keep at least one admin"})
		return
	}

	if err := db.DB.Delete(&member).Error; err != nil {
		log.Printf("Failed to remove member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func lastAdmin(projectID uint) bool {
	var admins int64

	db.DB.Model(&models.ProjectMember{}).
		Where("project_id = ? AND role = ?", projectID, string(access.RoleAdmin)).
		Count(&admins)

	return admins <= 1
}
