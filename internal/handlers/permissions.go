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

// requireProjectRole loads the caller's membership for the project and runs
// it through the access gate. Every project-scoped endpoint goes through
// here; pass an empty role for read access (membership alone suffices).
// On deny the 403 is written and ok is false.
func requireProjectRole(ctx *gin.Context, projectID uint, required access.Role) (access.Membership, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return access.Membership{}, false
	}

	var member models.ProjectMember

	err = db.DB.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to load membership for project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return access.Membership{}, false
	}

	var membership *access.Membership

	if err == nil {
		membership = &access.Membership{
			ProjectID: member.ProjectID,
			UserID:    member.UserID,
			Role:      access.Role(member.Role),
		}
	}

	decision := access.Check(membership, required)

	if !decision.Allowed {
		log.Printf("Access denied for user %d on project %d: %s", userID, projectID, decision.Reason)
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return access.Membership{}, false
	}

	if membership == nil {
		return access.Membership{}, true
	}

	return *membership, true
}

// Containment climbers: cards live in lists, lists in boards, boards in
// projects. Handlers addressing a child entity resolve its project before
// consulting the gate.

func findBoard(ctx *gin.Context, boardID uint) (models.Board, bool) {
	var board models.Board

	if err := db.DB.First(&board, boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		} else {
			log.Printf("Failed to load board %d: %v", boardID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return models.Board{}, false
	}

	return board, true
}

func findList(ctx *gin.Context, listID uint) (models.BoardList, models.Board, bool) {
	var list models.BoardList

	if err := db.DB.First(&list, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		} else {
			log.Printf("Failed to load list %d: %v", listID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return models.BoardList{}, models.Board{}, false
	}

	board, ok := findBoard(ctx, list.BoardID)

	if !ok {
		return models.BoardList{}, models.Board{}, false
	}

	return list, board, true
}

func findCard(ctx *gin.Context, cardID uint) (models.Card, models.Board, bool) {
	var card models.Card

	if err := db.DB.First(&card, cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		} else {
			log.Printf("Failed to load card %d: %v", cardID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return models.Card{}, models.Board{}, false
	}

	_, board, ok := findList(ctx, card.ListID)

	if !ok {
		return models.Card{}, models.Board{}, false
	}

	return card, board, true
}
