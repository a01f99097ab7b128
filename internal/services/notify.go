// Package services records in-app notifications for domain events. Failures
// here are logged and swallowed: a lost notification must never fail the
// request that triggered it.
package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/dmitriina1/AnalogueJira/db"
	"github.com/dmitriina1/AnalogueJira/internal/models"
	"gorm.io/datatypes"
)

func NotifyCardAssigned(card models.Card, assigneeID uint, assignedByName string) {
	payload := map[string]interface{}{
		"card_id": card.ID,
		"list_id": card.ListID,
	}

	create(models.Notification{
		UserID:  assigneeID,
		Type:    models.NotificationCardAssigned,
		Title:   "You were assigned to a card",
		Message: fmt.Sprintf("%s assigned you to \"%s\"", assignedByName, card.Title),
		Data:    marshal(payload),
	})
}

func NotifyMention(comment models.Comment, card models.Card, mentionedUserID uint, authorName string) {
	payload := map[string]interface{}{
		"card_id":    card.ID,
		"comment_id": comment.ID,
	}

	create(models.Notification{
		UserID:  mentionedUserID,
		Type:    models.NotificationCommentMention,
		Title:   "You were mentioned in a comment",
		Message: fmt.Sprintf("%s mentioned you on \"%s\"", authorName, card.Title),
		Data:    marshal(payload),
	})
}

func NotifyInvitationResolved(invitation models.Invitation, inviteeName string, accepted bool) {
	kind := models.NotificationInvitationDeclined
	verb := "declined"

	if accepted {
		kind = models.NotificationInvitationAccepted
		verb = "accepted"
	}

	payload := map[string]interface{}{
		"project_id":    invitation.ProjectID,
		"invitation_id": invitation.ID,
	}

	create(models.Notification{
		UserID:  invitation.InvitedByID,
		Type:    kind,
		Title:   "Invitation " + verb,
		Message: fmt.Sprintf("%s %s your invitation to %s", inviteeName, verb, invitation.Project.Name),
		Data:    marshal(payload),
	})
}

func create(notification models.Notification) {
	if err := db.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to create %s notification for user %d: %v", notification.Type, notification.UserID, err)
	}
}

func marshal(payload map[string]interface{}) datatypes.JSON {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal notification payload: %v", err)
		return nil
	}

	return datatypes.JSON(data)
}
