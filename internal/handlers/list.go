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

type CreateListRequest struct {
	Name     string `json:"name" binding:"required"`
	Position *int   `json:"position"`
}

type UpdateListRequest struct {
	Name string `json:"name" binding:"required"`
}

type MoveListRequest struct {
	Position int `json:"position"`
}

func CreateList(ctx *gin.Context) {
	boardID, err := utils.GetBoardID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, ok := findBoard(ctx, boardID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleMember); !ok {
		return
	}

	var body CreateListRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	requested := -1
	if body.Position != nil {
		requested = *body.Position
	}

	list := models.BoardList{
		Name:    body.Name,
		BoardID: board.ID,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		siblings, err := lockedListSiblings(tx, board.ID)

		if err != nil {
			return err
		}

		updates, position := ordering.Insert(siblings, requested)

		if err := applyPositions(tx, &models.BoardList{}, updates); err != nil {
			return err
		}

		list.Position = position

		return tx.Create(&list).Error
	})

	if err != nil {
		log.Printf("Failed to create list on board %d: %v", board.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create list"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusCreated, ListResponse{
		ID:       list.ID,
		Name:     list.Name,
		Position: list.Position,
		BoardID:  list.BoardID,
		Cards:    []CardResponse{},
	})
}

func UpdateList(ctx *gin.Context) {
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

	var body UpdateListRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	list.Name = body.Name

	if err := db.DB.Save(&list).Error; err != nil {
		log.Printf("Failed to update list %d: %v", list.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update list"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusOK, gin.H{"message": "List updated"})
}

// MoveList reorders a list within its board. Lists never change boards.
func MoveList(ctx *gin.Context) {
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
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not move item"})
		return
	}

	var body MoveListRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		siblings, err := lockedListSiblings(tx, board.ID)

		if err != nil {
			return err
		}

		updates, placement, err := ordering.Move(siblings, siblings, list.ID, body.Position)

		if err != nil {
			return err
		}

		if err := applyPositions(tx, &models.BoardList{}, updates); err != nil {
			return err
		}

		return tx.Model(&list).Update("position", placement.Position).Error
	})

	if err != nil {
		respondMoveError(ctx, err, "list", list.ID)
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusOK, gin.H{"message": "List moved"})
}

func ArchiveList(ctx *gin.Context) {
	setListArchived(ctx, true)
}

func UnarchiveList(ctx *gin.Context) {
	setListArchived(ctx, false)
}

func setListArchived(ctx *gin.Context, archived bool) {
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

	if list.IsArchived == archived {
		ctx.JSON(http.StatusOK, gin.H{"message": "List unchanged"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		siblings, err := lockedListSiblings(tx, board.ID)

		if err != nil {
			return err
		}

		var position int

		if archived {
			// Archiving frees the slot; survivors close ranks.
			updates, err := ordering.Remove(siblings, list.ID)

			if err != nil {
				return err
			}

			if err := applyPositions(tx, &models.BoardList{}, updates); err != nil {
				return err
			}

			position = 0
		} else {
			// Unarchiving appends at the end of the board.
			_, position = ordering.Insert(siblings, -1)
		}

		return tx.Model(&list).Updates(map[string]interface{}{
			"is_archived": archived,
			"position":    position,
		}).Error
	})

	if err != nil {
		respondMoveError(ctx, err, "list", list.ID)
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusOK, gin.H{"message": "List updated"})
}

func DeleteList(ctx *gin.Context) {
	listID, err := utils.GetListID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, board, ok := findList(ctx, listID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleAdmin); !ok {
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if !list.IsArchived {
			siblings, err := lockedListSiblings(tx, board.ID)

			if err != nil {
				return err
			}

			updates, err := ordering.Remove(siblings, list.ID)

			if err != nil {
				return err
			}

			if err := applyPositions(tx, &models.BoardList{}, updates); err != nil {
				return err
			}
		}

		return tx.Delete(&list).Error
	})

	if err != nil {
		respondMoveError(ctx, err, "list", list.ID)
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.Status(http.StatusNoContent)
}

// respondMoveError maps reorderer failures onto client responses without
// leaking position arithmetic.
func respondMoveError(ctx *gin.Context, err error, entity string, id uint) {
	switch {
	case errors.Is(err, ordering.ErrItemNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Could not move item"})
	case errors.Is(err, ordering.ErrInvalidContainer):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not move item"})
	case errors.Is(err, ordering.ErrNotDense):
		log.Printf("Position invariant violated around %s %d: %v", entity, id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not move item"})
	default:
		log.Printf("Failed to reorder %s %d: %v", entity, id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not move item"})
	}
}
