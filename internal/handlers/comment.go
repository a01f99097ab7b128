package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/dmitriina1/AnalogueJira/db"
	"github.com/dmitriina1/AnalogueJira/internal/access"
	"github.com/dmitriina1/AnalogueJira/internal/models"
	"github.com/dmitriina1/AnalogueJira/internal/services"
	"github.com/dmitriina1/AnalogueJira/internal/types"
	"github.com/dmitriina1/AnalogueJira/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID        uint                 `json:"id"`
	Text      string               `json:"text"`
	CardID    uint                 `json:"card_id"`
	Author    types.UserResponse   `json:"author"`
	Mentions  []types.UserResponse `json:"mentions"`
	CreatedAt time.Time            `json:"created_at"`
}

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_.-]+)`)

func AddComment(ctx *gin.Context) {
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

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment := models.Comment{
		Text:     body.Text,
		CardID:   card.ID,
		AuthorID: currentUser.ID,
	}

	mentioned := resolveMentions(body.Text, board.ProjectID)

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		for _, user := range mentioned {
			mention := models.Mention{
				CommentID:       comment.ID,
				MentionedUserID: user.ID,
			}

			if err := tx.Create(&mention).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to add comment to card %d: %v", card.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	for _, user := range mentioned {
		if user.ID != currentUser.ID {
			services.NotifyMention(comment, card, user.ID, currentUser.Username)
		}
	}

	BroadcastRefresh(board.ProjectID)

	response := CommentResponse{
		ID:     comment.ID,
		Text:   comment.Text,
		CardID: comment.CardID,
		Author: types.UserResponse{
			ID:       currentUser.ID,
			Username: currentUser.Username,
			Email:    currentUser.Email,
		},
		Mentions:  make([]types.UserResponse, 0, len(mentioned)),
		CreatedAt: comment.CreatedAt,
	}

	for _, user := range mentioned {
		response.Mentions = append(response.Mentions, types.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			AvatarURL: user.AvatarURL,
		})
	}

	ctx.JSON(http.StatusCreated, response)
}

func ListComments(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, commentResponses(card.ID))
}

func DeleteComment(ctx *gin.Context) {
	commentID, err := utils.IDParam(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment

	if err := db.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			log.Printf("Failed to load comment %d: %v", commentID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	_, board, ok := findCard(ctx, comment.CardID)

	if !ok {
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// Authors delete their own comments; admins can delete any.
	required := access.Role("")
	if comment.AuthorID != currentUser.ID {
		required = access.RoleAdmin
	}

	if _, ok := requireProjectRole(ctx, board.ProjectID, required); !ok {
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		log.Printf("Failed to delete comment %d: %v", comment.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	BroadcastRefresh(board.ProjectID)

	ctx.Status(http.StatusNoContent)
}

// resolveMentions matches @username tokens against the project's members.
// Unknown names are ignored rather than rejected.
func resolveMentions(text string, projectID uint) []models.User {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)

	if len(matches) == 0 {
		return nil
	}

	names := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))

	for _, match := range matches {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}

	var users []models.User

	err := db.DB.
		Joins("JOIN project_members ON project_members.user_id = users.id").
		Where("project_members.project_id = ? AND users.username IN ?", projectID, names).
		Find(&users).Error

	if err != nil {
		log.Printf("Failed to resolve mentions for project %d: %v", projectID, err)
		return nil
	}

	return users
}

func commentResponses(cardID uint) []CommentResponse {
	var comments []models.Comment

	db.DB.Preload("Author").Preload("Mentions.MentionedUser").
		Where("card_id = ?", cardID).
		Order("created_at").
		Find(&comments)

	response := make([]CommentResponse, 0, len(comments))

	for _, comment := range comments {
		entry := CommentResponse{
			ID:     comment.ID,
			Text:   comment.Text,
			CardID: comment.CardID,
			Author: types.UserResponse{
				ID:        comment.Author.ID,
				Username:  comment.Author.Username,
				Email:     comment.Author.Email,
				AvatarURL: comment.Author.AvatarURL,
			},
			Mentions:  make([]types.UserResponse, 0, len(comment.Mentions)),
			CreatedAt: comment.CreatedAt,
		}

		for _, mention := range comment.Mentions {
			entry.Mentions = append(entry.Mentions, types.UserResponse{
				ID:        mention.MentionedUser.ID,
				Username:  mention.MentionedUser.Username,
				Email:     mention.MentionedUser.Email,
				AvatarURL: mention.MentionedUser.AvatarURL,
			})
		}

		response = append(response, entry)
	}

	return response
}
