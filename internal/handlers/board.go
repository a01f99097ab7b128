package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/dmitriina1/AnalogueJira/db"
	"github.com/dmitriina1/AnalogueJira/internal/access"
	"github.com/dmitriina1/AnalogueJira/internal/models"
	"github.com/dmitriina1/AnalogueJira/internal/types"
	"github.com/dmitriina1/AnalogueJira/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateBoardRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type BoardResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ProjectID   uint   `json:"project_id"`
}

type BoardDetailResponse struct {
	BoardResponse
	Lists []ListResponse `json:"lists"`
}

type ListResponse struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	Position int            `json:"position"`
	BoardID  uint           `json:"board_id"`
	Cards    []CardResponse `json:"cards"`
}

type CardResponse struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Position    int                  `json:"position"`
	ListID      uint                 `json:"list_id"`
	DueDate     *time.Time           `json:"due_date"`
	CreatedBy   types.UserResponse   `json:"created_by"`
	Assignees   []types.UserResponse `json:"assignees"`
	Labels      []LabelResponse      `json:"labels"`
}

func CreateBoard(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectRole(ctx, projectID, access.RoleMember); !ok {
		return
	}

	var body CreateBoardRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board := models.Board{
		Name:        body.Name,
		Description: body.Description,
		ProjectID:   projectID,
	}

	if err := db.DB.Create(&board).Error; err != nil {
		log.Printf("Failed to create board: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	BroadcastRefresh(projectID)

	ctx.JSON(http.StatusCreated, BoardResponse{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		ProjectID:   board.ProjectID,
	})
}

func ListBoards(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectRole(ctx, projectID, ""); !ok {
		return
	}

	var boards []models.Board

	if err := db.DB.Where("project_id = ?", projectID).Find(&boards).Error; err != nil {
		log.Printf("Failed to list boards for project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, 0, len(boards))

	for _, board := range boards {
		response = append(response, BoardResponse{
			ID:          board.ID,
			Name:        board.Name,
			Description: board.Description,
			ProjectID:   board.ProjectID,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// GetBoard returns the board with its active lists and cards, both ordered
// by position. Archived lists and cards are left out entirely.
func GetBoard(ctx *gin.Context) {
	boardID, err := utils.GetBoardID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, ok := findBoard(ctx, boardID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, ""); !ok {
		return
	}

	var lists []models.BoardList

	err = db.DB.Where("board_id = ? AND is_archived = ?", board.ID, false).
		Order("position").
		Find(&lists).Error

	if err != nil {
		log.Printf("Failed to load lists for board %d: %v", board.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}

	response := BoardDetailResponse{
		BoardResponse: BoardResponse{
			ID:          board.ID,
			Name:        board.Name,
			Description: board.Description,
			ProjectID:   board.ProjectID,
		},
		Lists: make([]ListResponse, 0, len(lists)),
	}

	for _, list := range lists {
		var cards []models.Card

		err = db.DB.Preload("CreatedBy").Preload("Assignees.User").Preload("Labels.Label").
			Where("list_id = ? AND is_archived = ?", list.ID, false).
			Order("position").
			Find(&cards).Error

		if err != nil {
			log.Printf("Failed to load cards for list %d: %v", list.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
			return
		}

		listResponse := ListResponse{
			ID:       list.ID,
			Name:     list.Name,
			Position: list.Position,
			BoardID:  list.BoardID,
			Cards:    make([]CardResponse, 0, len(cards)),
		}

		for _, card := range cards {
			listResponse.Cards = append(listResponse.Cards, cardResponse(card))
		}

		response.Lists = append(response.Lists, listResponse)
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateBoard(ctx *gin.Context) {
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

	var body UpdateBoardRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board.Name = body.Name
	board.Description = body.Description

	if err := db.DB.Save(&board).Error; err != nil {
		log.Printf("Failed to update board %d: %v", board.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.JSON(http.StatusOK, BoardResponse{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		ProjectID:   board.ProjectID,
	})
}

func DeleteBoard(ctx *gin.Context) {
	boardID, err := utils.GetBoardID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, ok := findBoard(ctx, boardID)

	if !ok {
		return
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, access.RoleAdmin); !ok {
		return
	}

	if err := db.DB.Delete(&board).Error; err != nil {
		log.Printf("Failed to delete board %d: %v", board.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.Status(http.StatusNoContent)
}

func cardResponse(card models.Card) CardResponse {
	response := CardResponse{
		ID:          card.ID,
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		ListID:      card.ListID,
		DueDate:     card.DueDate,
		CreatedBy: types.UserResponse{
			ID:        card.CreatedBy.ID,
			Username:  card.CreatedBy.Username,
			Email:     card.CreatedBy.Email,
			AvatarURL: card.CreatedBy.AvatarURL,
		},
		Assignees: make([]types.UserResponse, 0, len(card.Assignees)),
		Labels:    make([]LabelResponse, 0, len(card.Labels)),
	}

	for _, assignee := range card.Assignees {
		response.Assignees = append(response.Assignees, types.UserResponse{
			ID:        assignee.User.ID,
			Username:  assignee.User.Username,
			Email:     assignee.User.Email,
			AvatarURL: assignee.User.AvatarURL,
		})
	}

	for _, cardLabel := range card.Labels {
		response.Labels = append(response.Labels, LabelResponse{
			ID:        cardLabel.Label.ID,
			Name:      cardLabel.Label.Name,
			Color:     cardLabel.Label.Color,
			ProjectID: cardLabel.Label.ProjectID,
		})
	}

	return response
}
