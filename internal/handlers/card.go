package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dmitriina1/AnalogueJira/db"
	"github.com/dmitriina1/AnalogueJira/internal/access"
	"github.com/dmitriina1/AnalogueJira/internal/models"
	"github.com/dmitriina1/AnalogueJira/internal/ordering"
	"github.com/dmitriina1/AnalogueJira/internal/services"
	"github.com/dmitriina1/AnalogueJira/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateCardRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Position    *int       `json:"position"`
}

type UpdateCardRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type MoveCardRequest struct {
	ListID   uint `json:"list_id" binding:"required"`
	Position int  `json:"position"`
}

type AssignUserRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type CardDetailResponse struct {
	CardResponse
	Checklists []ChecklistResponse `json:"checklists"`
	Comments   []CommentResponse   `json:"comments"`
}

func CreateCard(ctx *gin.Context) {
	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, board, ok := findList(ctx, listID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleMember); !ok {
		return
	}

	if list.IsArchived {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "List is archived"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateCardRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	requested := -1
	if body.Position != nil {
		requested = *body.Position
	}

	card := models.Card{
		Title:       body.Title,
		Description: body.Description,
		DueDate:     body.DueDate,
		ListID:      list.ID,
		CreatedByID: userID,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		siblings, err := lockedCardSiblings(tx, list.ID)

		if err != nil {
			return err
		}

		updates, position := ordering.Insert(siblings, requested)

		if err := applyPositions(tx, &models.Card{}, updates); err != nil {
			return err
		}

		card.Position = position

		return tx.Create(&card).Error
	})

	if err != nil {
		log.Printf("Failed to create card in list %d: %v", list.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	db.DB.Preload("CreatedBy").First(&card, card.ID)

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusCreated, cardResponse(card))
}

func GetCard(ctx *gin.Context) {
	cardID, err := utils.GetCardID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, board, ok := findCard(ctx, cardID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, ""); !ok {
		return
	}

	err = db.DB.Preload("CreatedBy").Preload("Assignees.User").Preload("Labels.Label").
		First(&card, card.ID).Error

	if err != nil {
		log.Printf("Failed to load card %d: %v", card.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}

	response := CardDetailResponse{
		CardResponse: cardResponse(card),
		Checklists:   checklistResponses(card.ID),
		Comments:     commentResponses(card.ID),
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateCard(ctx *gin.Context) {
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

	var body UpdateCardRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if body.Title != nil {
		updates["title"] = *body.Title
	}

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.DueDate != nil {
		updates["due_date"] = *body.DueDate
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&card).Updates(updates).Error; err != nil {
		log.Printf("Failed to update card %d: %v", card.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	db.DB.Preload("CreatedBy").Preload("Assignees.User").Preload("Labels.Label").First(&card, card.ID)

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusOK, cardResponse(card))
}

// MoveCard handles drag-and-drop within a list and across lists. The
// destination list must belong to the same project; both sibling sets are
// locked and the whole batch is applied in one transaction.
func MoveCard(ctx *gin.Context) {
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

	if card.IsArchived {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not move item"})
		return
	}

	var body MoveCardRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	destList, destBoard, ok := findList(ctx, body.ListID)

	if !ok {
		return
	}

	if destBoard.ProjectID != board.ProjectID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not move item"})
		return
	}

	if destList.IsArchived {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not move item"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		source, err := lockedCardSiblings(tx, card.ListID)

		if err != nil {
			return err
		}

		dest := source

		if destList.ID != card.ListID {
			dest, err = lockedCardSiblings(tx, destList.ID)

			if err != nil {
				return err
			}
		}

		updates, placement, err := ordering.Move(source, dest, card.ID, body.Position)

		if err != nil {
			return err
		}

		if err := applyPositions(tx, &models.Card{}, updates); err != nil {
			return err
		}

		return tx.Model(&card).Updates(map[string]interface{}{
			"list_id":  placement.ContainerID,
			"position": placement.Position,
		}).Error
	})

	if err != nil {
		respondMoveError(ctx, err, "card", card.ID)
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Card moved"})
}

func ArchiveCard(ctx *gin.Context) {
	setCardArchived(ctx, true)
}

func UnarchiveCard(ctx *gin.Context) {
	setCardArchived(ctx, false)
}

func setCardArchived(ctx *gin.Context, archived bool) {
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

	if card.IsArchived == archived {
		ctx.JSON(http.StatusOK, gin.H{"message": "Card unchanged"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		siblings, err := lockedCardSiblings(tx, card.ListID)

		if err != nil {
			return err
		}

		var position int

		if archived {
			updates, err := ordering.Remove(siblings, card.ID)

			if err != nil {
				return err
			}

			if err := applyPositions(tx, &models.Card{}, updates); err != nil {
				return err
			}

			position = 0
		} else {
			_, position = ordering.Insert(siblings, -1)
		}

		return tx.Model(&card).Updates(map[string]interface{}{
			"is_archived": archived,
			"position":    position,
		}).Error
	})

	if err != nil {
		respondMoveError(ctx, err, "card", card.ID)
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Card updated"})
}

func DeleteCard(ctx *gin.Context) {
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

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if !card.IsArchived {
			siblings, err := lockedCardSiblings(tx, card.ListID)

			if err != nil {
				return err
			}

			updates, err := ordering.Remove(siblings, card.ID)

			if err != nil {
				return err
			}

			if err := applyPositions(tx, &models.Card{}, updates); err != nil {
				return err
			}
		}

		return tx.Delete(&card).Error
	})

	if err != nil {
		respondMoveError(ctx, err, "card", card.ID)
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.Status(http.StatusNoContent)
}

func AssignUser(ctx *gin.Context) {
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

	var body AssignUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Only project members can be assigned.
	var member models.ProjectMember

	err = db.DB.Where("project_id = ? AND user_id = ?", board.ProjectID, body.UserID).First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User is not a project member"})
		} else {
			log.Printf("Failed to check membership: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var existing models.CardAssignee

	if err := db.DB.Where("card_id = ? AND user_id = ?", card.ID, body.UserID).First(&existing).Error; err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User already assigned to this card"})
		return
	}

	assignee := models.CardAssignee{CardID: card.ID, UserID: body.UserID}

	if err := db.DB.Create(&assignee).Error; err != nil {
		log.Printf("Failed to assign user %d to card %d: %v", body.UserID, card.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign user"})
		return
	}

	currentUser, _ := utils.GetCurrentUser(ctx)

	if body.UserID != currentUser.ID {
		services.NotifyCardAssigned(card, body.UserID, currentUser.Username)
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusCreated, gin.H{"message": "User assigned"})
}

func UnassignUser(ctx *gin.Context) {
	cardID, err := utils.GetCardID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetUserID, err := utils.IDParam(ctx, "user_id")

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

	result := db.DB.Where("card_id = ? AND user_id = ?", card.ID, targetUserID).Delete(&models.CardAssignee{})

	if result.Error != nil {
		log.Printf("Failed to unassign user %d from card %d: %v", targetUserID, card.ID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unassign user"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.Status(http.StatusNoContent)
}
