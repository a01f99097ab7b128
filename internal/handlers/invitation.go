package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dmitriina1/AnalogueJira/db"
	"github.com/dmitriina1/AnalogueJira/internal/access"
	"github.com/dmitriina1/AnalogueJira/internal/models"
	"github.com/dmitriina1/AnalogueJira/internal/services"
	"github.com/dmitriina1/AnalogueJira/internal/types"
	"github.com/dmitriina1/AnalogueJira/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invitationTTL = 7 * 24 * time.Hour

type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

type InvitationResponse struct {
	ID          uint               `json:"id"`
	ProjectID   uint               `json:"project_id"`
	ProjectName string             `json:"project_name"`
	InvitedBy   types.UserResponse `json:"invited_by"`
	Role        string             `json:"role"`
	Token       string             `json:"token"`
	Status      string             `json:"status"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

func CreateInvitation(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inviter, ok := requireProjectRole(ctx, projectID, access.RoleAdmin)

	if !ok {
		return
	}

	var body CreateInvitationRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role := body.Role
	if role == "" {
		role = string(access.RoleMember)
	}

	if !access.Role(role).Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var existingUser models.User

	if err := db.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		var member models.ProjectMember
		if err := db.DB.Where("project_id = ? AND user_id = ?", projectID, existingUser.ID).First(&member).Error; err == nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User is already a project member"})
			return
		}
	}

	invitation := models.Invitation{
		ProjectID:   projectID,
		Email:       email,
		InvitedByID: inviter.UserID,
		Role:        role,
		Token:       uuid.NewString(),
		Status:      models.InvitationPending,
		ExpiresAt:   time.Now().Add(invitationTTL),
	}

	if err := db.DB.Create(&invitation).Error; err != nil {
		log.Printf("Failed to create invitation: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	if err := db.DB.Preload("Project").Preload("InvitedBy").First(&invitation, invitation.ID).Error; err != nil {
		log.Printf("Failed to reload invitation %d: %v", invitation.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, invitationResponse(invitation))
}

func ListMyInvitations(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var invitations []models.Invitation

	err = db.DB.Preload("Project").Preload("InvitedBy").
		Where("email = ? AND status = ? AND expires_at > ?", currentUser.Email, models.InvitationPending, time.Now()).
		Find(&invitations).Error

	if err != nil {
		log.Printf("Failed to list invitations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invitations"})
		return
	}

	response := make([]InvitationResponse, 0, len(invitations))

	for _, invitation := range invitations {
		response = append(response, invitationResponse(invitation))
	}

	ctx.JSON(http.StatusOK, response)
}

func AcceptInvitation(ctx *gin.Context) {
	resolveInvitation(ctx, true)
}

func DeclineInvitation(ctx *gin.Context) {
	resolveInvitation(ctx, false)
}

func resolveInvitation(ctx *gin.Context, accept bool) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	token := ctx.Param("token")

	var invitation models.Invitation

	if err := db.DB.Preload("Project").First(&invitation, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		} else {
			log.Printf("Failed to load invitation: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if invitation.Email != currentUser.Email {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	if invitation.Status != models.InvitationPending {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invitation already resolved"})
		return
	}

	if time.Now().After(invitation.ExpiresAt) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invitation has expired"})
		return
	}

	status := models.InvitationDeclined
	if accept {
		status = models.InvitationAccepted
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if accept {
			membership := models.ProjectMember{
				ProjectID: invitation.ProjectID,
				UserID:    currentUser.ID,
				Role:      invitation.Role,
			}

			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		}

		return tx.Model(&invitation).Update("status", status).Error
	})

	if err != nil {
		log.Printf("Failed to resolve invitation %d: %v", invitation.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve invitation"})
		return
	}

	services.NotifyInvitationResolved(invitation, currentUser.Username, accept)

	if accept {
		ctx.JSON(http.StatusOK, gin.H{"message": "Invitation accepted", "project_id": invitation.ProjectID})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invitation declined"})
}

func invitationResponse(invitation models.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:          invitation.ID,
		ProjectID:   invitation.ProjectID,
		ProjectName: invitation.Project.Name,
		InvitedBy: types.UserResponse{
			ID:        invitation.InvitedBy.ID,
			Username:  invitation.InvitedBy.Username,
			Email:     invitation.InvitedBy.Email,
			AvatarURL: invitation.InvitedBy.AvatarURL,
		},
		Role:      invitation.Role,
		Token:     invitation.Token,
		Status:    invitation.Status,
		ExpiresAt: invitation.ExpiresAt,
	}
}
