package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dmitriina1/AnalogueJira/db"
	"github.com/dmitriina1/AnalogueJira/internal/access"
	"github.com/dmitriina1/AnalogueJira/internal/models"
	"github.com/dmitriina1/AnalogueJira/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required,hexcolor"`
}

type LabelResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	ProjectID uint   `json:"project_id"`
}

func CreateLabel(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectRole(ctx, projectID, access.RoleMember); !ok {
		return
	}

	var body CreateLabelRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	label := models.Label{
		Name:      body.Name,
		Color:     body.Color,
		ProjectID: projectID,
	}

	if err := db.DB.Create(&label).Error; err != nil {
		log.Printf("Failed to create label: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create label"})
		return
	}

	ctx.JSON(http.StatusCreated, LabelResponse{
		ID:        label.ID,
		Name:      label.Name,
		Color:     label.Color,
		ProjectID: label.ProjectID,
	})
}

func ListLabels(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectRole(ctx, projectID, ""); !ok {
		return
	}

	var labels []models.Label

	if err := db.DB.Where("project_id = ?", projectID).Order("name").Find(&labels).Error; err != nil {
		log.Printf("Failed to list labels for project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}

	response := make([]LabelResponse, 0, len(labels))

	for _, label := range labels {
		response = append(response, LabelResponse{
			ID:        label.ID,
			Name:      label.Name,
			Color:     label.Color,
			ProjectID: label.ProjectID,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteLabel(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	labelID, err := utils.IDParam(ctx, "label_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectRole(ctx, projectID, access.RoleAdmin); !ok {
		return
	}

	result := db.DB.Where("id = ? AND project_id = ?", labelID, projectID).Delete(&models.Label{})

	if result.Error != nil {
		log.Printf("Failed to delete label %d: %v", labelID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete label"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Label not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AttachLabel(ctx *gin.Context) {
	cardID, err := utils.GetCardID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	labelID, err := utils.IDParam(ctx, "label_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, board, ok := findCard(ctx, cardID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleMember); !ok {
		return
	}

	// The label must belong to the card's project.
	var label models.Label

	err = db.DB.Where("id = ? AND project_id = ?", labelID, board.ProjectID).First(&label).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Label not found"})
		} else {
			log.Printf("Failed to load label %d: %v", labelID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var existing models.CardLabel

	if err := db.DB.Where("card_id = ? AND label_id = ?", card.ID, label.ID).First(&existing).Error; err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Label already attached"})
		return
	}

	cardLabel := models.CardLabel{CardID: card.ID, LabelID: label.ID}

	if err := db.DB.Create(&cardLabel).Error; err != nil {
		log.Printf("Failed to attach label %d to card %d: %v", label.ID, card.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach label"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusCreated, gin.H{"message": "Label attached"})
}

func DetachLabel(ctx *gin.Context) {
	cardID, err := utils.GetCardID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	labelID, err := utils.IDParam(ctx, "label_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, board, ok := findCard(ctx, cardID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleMember); !ok {
		return
	}

	result := db.DB.Where("card_id = ? AND label_id = ?", card.ID, labelID).Delete(&models.CardLabel{})

	if result.Error != nil {
		log.Printf("Failed to detach label %d from card %d: %v", labelID, card.ID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach label"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Label not attached"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.Status(http.StatusNoContent)
}
