package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dmitriina1/AnalogueJira/db"
	"github.com/dmitriina1/AnalogueJira/internal/access"
	"github.com/dmitriina1/AnalogueJira/internal/models"
	"github.com/dmitriina1/AnalogueJira/internal/ordering"
	"github.com/dmitriina1/AnalogueJira/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateChecklistRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateChecklistRequest struct {
	Title string `json:"title" binding:"required"`
}

type CreateChecklistItemRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateChecklistItemRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type MoveChecklistItemRequest struct {
	Position int `json:"position"`
}

type ChecklistResponse struct {
	ID             uint                    `json:"id"`
	Title          string                  `json:"title"`
	CardID         uint                    `json:"card_id"`
	Position       int                     `json:"position"`
	Items          []ChecklistItemResponse `json:"items"`
	CompletedCount int                     `json:"completed_count"`
	TotalCount     int                     `json:"total_count"`
}

type ChecklistItemResponse struct {
	ID          uint   `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	Position    int    `json:"position"`
	ChecklistID uint   `json:"checklist_id"`
}

func findChecklist(ctx *gin.Context, checklistID uint) (models.Checklist, models.Card, models.Board, bool) {
	var checklist models.Checklist

	if err := db.DB.First(&checklist, checklistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Checklist not found"})
		} else {
			log.Printf("Failed to load checklist %d: %v", checklistID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return models.Checklist{}, models.Card{}, models.Board{}, false
	}

	card, board, ok := findCard(ctx, checklist.CardID)

	if !ok {
		return models.Checklist{}, models.Card{}, models.Board{}, false
	}

	return checklist, card, board, true
}

func CreateChecklist(ctx *gin.Context) {
	cardID, err := utils.GetCardID(ctx)

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

	var body CreateChecklistRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	checklist := models.Checklist{
		Title:  body.Title,
		CardID: card.ID,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		siblings, err := lockedChecklistSiblings(tx, card.ID)

		if err != nil {
			return err
		}

		_, position := ordering.Insert(siblings, -1)
		checklist.Position = position

		return tx.Create(&checklist).Error
	})

	if err != nil {
		log.Printf("Failed to create checklist on card %d: %v", card.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checklist"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusCreated, ChecklistResponse{
		ID:       checklist.ID,
		Title:    checklist.Title,
		CardID:   checklist.CardID,
		Position: checklist.Position,
		Items:    []ChecklistItemResponse{},
	})
}

func UpdateChecklist(ctx *gin.Context) {
	checklistID, err := utils.IDParam(ctx, "checklist_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checklist, _, board, ok := findChecklist(ctx, checklistID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleMember); !ok {
		return
	}

	var body UpdateChecklistRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := db.DB.Model(&checklist).Update("title", body.Title).Error; err != nil {
		log.Printf("Failed to update checklist %d: %v", checklist.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update checklist"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Checklist updated"})
}

func DeleteChecklist(ctx *gin.Context) {
	checklistID, err := utils.IDParam(ctx, "checklist_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checklist, card, board, ok := findChecklist(ctx, checklistID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleMember); !ok {
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		siblings, err := lockedChecklistSiblings(tx, card.ID)

		if err != nil {
			return err
		}

		updates, err := ordering.Remove(siblings, checklist.ID)

		if err != nil {
			return err
		}

		if err := applyPositions(tx, &models.Checklist{}, updates); err != nil {
			return err
		}

		return tx.Delete(&checklist).Error
	})

	if err != nil {
		respondMoveError(ctx, err, "checklist", checklist.ID)
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.Status(http.StatusNoContent)
}

func CreateChecklistItem(ctx *gin.Context) {
	checklistID, err := utils.IDParam(ctx, "checklist_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checklist, _, board, ok := findChecklist(ctx, checklistID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleMember); !ok {
		return
	}

	var body CreateChecklistItemRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	item := models.ChecklistItem{
		Text:        body.Text,
		ChecklistID: checklist.ID,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		siblings, err := lockedItemSiblings(tx, checklist.ID)

		if err != nil {
			return err
		}

		_, position := ordering.Insert(siblings, -1)
		item.Position = position

		return tx.Create(&item).Error
	})

	if err != nil {
		log.Printf("Failed to create checklist item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusCreated, ChecklistItemResponse{
		ID:          item.ID,
		Text:        item.Text,
		Completed:   item.Completed,
		Position:    item.Position,
		ChecklistID: item.ChecklistID,
	})
}

func UpdateChecklistItem(ctx *gin.Context) {
	item, board, ok := findChecklistItem(ctx)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleMember); !ok {
		return
	}

	var body UpdateChecklistItemRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if body.Text != nil {
		updates["text"] = *body.Text
	}

	if body.Completed != nil {
		updates["completed"] = *body.Completed
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&item).Updates(updates).Error; err != nil {
		log.Printf("Failed to update checklist item %d: %v", item.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Item updated"})
}

// MoveChecklistItem reorders an item within its checklist.
func MoveChecklistItem(ctx *gin.Context) {
	item, board, ok := findChecklistItem(ctx)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleMember); !ok {
		return
	}

	var body MoveChecklistItemRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		siblings, err := lockedItemSiblings(tx, item.ChecklistID)

		if err != nil {
			return err
		}

		updates, placement, err := ordering.Move(siblings, siblings, item.ID, body.Position)

		if err != nil {
			return err
		}

		if err := applyPositions(tx, &models.ChecklistItem{}, updates); err != nil {
			return err
		}

		return tx.Model(&item).Update("position", placement.Position).Error
	})

	if err != nil {
		respondMoveError(ctx, err, "checklist item", item.ID)
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Item moved"})
}

func DeleteChecklistItem(ctx *gin.Context) {
	item, board, ok := findChecklistItem(ctx)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleMember); !ok {
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		siblings, err := lockedItemSiblings(tx, item.ChecklistID)

		if err != nil {
			return err
		}

		updates, err := ordering.Remove(siblings, item.ID)

		if err != nil {
			return err
		}

		if err := applyPositions(tx, &models.ChecklistItem{}, updates); err != nil {
			return err
		}

		return tx.Delete(&item).Error
	})

	if err != nil {
		respondMoveError(ctx, err, "checklist item", item.ID)
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.Status(http.StatusNoContent)
}

func findChecklistItem(ctx *gin.Context) (models.ChecklistItem, models.Board, bool) {
	itemID, err := utils.IDParam(ctx, "item_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.ChecklistItem{}, models.Board{}, false
	}

	var item models.ChecklistItem

	if err := db.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			log.Printf("Failed to load checklist item %d: %v", itemID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return models.ChecklistItem{}, models.Board{}, false
	}

	_, _, board, ok := findChecklist(ctx, item.ChecklistID)

	if !ok {
		return models.ChecklistItem{}, models.Board{}, false
	}

	return item, board, true
}

func checklistResponses(cardID uint) []ChecklistResponse {
	var checklists []models.Checklist

	db.DB.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Where("card_id = ?", cardID).Order("position").Find(&checklists)

	response := make([]ChecklistResponse, 0, len(checklists))

	for _, checklist := range checklists {
		entry := ChecklistResponse{
			ID:         checklist.ID,
			Title:      checklist.Title,
			CardID:     checklist.CardID,
			Position:   checklist.Position,
			Items:      make([]ChecklistItemResponse, 0, len(checklist.Items)),
			TotalCount: len(checklist.Items),
		}

		for _, item := range checklist.Items {
			if item.Completed {
				entry.CompletedCount++
			}

			entry.Items = append(entry.Items, ChecklistItemResponse{
				ID:          item.ID,
				Text:        item.Text,
				Completed:   item.Completed,
				Position:    item.Position,
				ChecklistID: item.ChecklistID,
			})
		}

		response = append(response, entry)
	}

	return response
}
