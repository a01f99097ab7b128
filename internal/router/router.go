package router

import (
	"time"

	"github.com/dmitriina1/AnalogueJira/internal/handlers"
	"github.com/dmitriina1/AnalogueJira/internal/middleware"
	"github.com/dmitriina1/AnalogueJira/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", middleware.AuthMiddleware(), handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		api.GET("/users", middleware.AuthMiddleware(), handlers.ListUsers)

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			projects.GET("/:project_id/members", handlers.ListMembers)
			projects.PATCH("/:project_id/members/:user_id", handlers.UpdateMemberRole)
			projects.DELETE("/:project_id/members/:user_id", handlers.RemoveMember)

			projects.POST("/:project_id/invitations", handlers.CreateInvitation)

			projects.POST("/:project_id/boards", handlers.CreateBoard)
			projects.GET("/:project_id/boards", handlers.ListBoards)

			projects.POST("/:project_id/labels", handlers.CreateLabel)
			projects.GET("/:project_id/labels", handlers.ListLabels)
			projects.DELETE("/:project_id/labels/:label_id", handlers.DeleteLabel)
		}

		invitations := api.Group("/invitations", middleware.AuthMiddleware())
		{
			invitations.GET("", handlers.ListMyInvitations)
			invitations.POST("/:token/accept", handlers.AcceptInvitation)
			invitations.POST("/:token/decline", handlers.DeclineInvitation)
		}

		boards := api.Group("/boards", middleware.AuthMiddleware())
		{
			boards.GET("/:board_id", handlers.GetBoard)
			boards.PATCH("/:board_id", handlers.UpdateBoard)
			boards.DELETE("/:board_id", handlers.DeleteBoard)
			boards.POST("/:board_id/lists", handlers.CreateList)
		}

		lists := api.Group("/lists", middleware.AuthMiddleware())
		{
			lists.PATCH("/:list_id", handlers.UpdateList)
			lists.DELETE("/:list_id", handlers.DeleteList)
			lists.POST("/:list_id/move", handlers.MoveList)
			lists.POST("/:list_id/archive", handlers.ArchiveList)
			lists.POST("/:list_id/unarchive", handlers.UnarchiveList)
			lists.POST("/:list_id/cards", handlers.CreateCard)
		}

		cards := api.Group("/cards", middleware.AuthMiddleware())
		{
			cards.GET("/:card_id", handlers.GetCard)
			cards.PATCH("/:card_id", handlers.UpdateCard)
			cards.DELETE("/:card_id", handlers.DeleteCard)
			cards.POST("/:card_id/move", handlers.MoveCard)
			cards.POST("/:card_id/archive", handlers.ArchiveCard)
			cards.POST("/:card_id/unarchive", handlers.UnarchiveCard)

			cards.POST("/:card_id/assignees", handlers.AssignUser)
			cards.DELETE("/:card_id/assignees/:user_id", handlers.UnassignUser)

			cards.POST("/:card_id/labels/:label_id", handlers.AttachLabel)
			cards.DELETE("/:card_id/labels/:label_id", handlers.DetachLabel)

			cards.POST("/:card_id/comments", handlers.AddComment)
			cards.GET("/:card_id/comments", handlers.ListComments)

			cards.POST("/:card_id/checklists", handlers.CreateChecklist)
		}

		api.DELETE("/comments/:comment_id", middleware.AuthMiddleware(), handlers.DeleteComment)

		checklists := api.Group("/checklists", middleware.AuthMiddleware())
		{
			checklists.PATCH("/:checklist_id", handlers.UpdateChecklist)
			checklists.DELETE("/:checklist_id", handlers.DeleteChecklist)
			checklists.POST("/:checklist_id/items", handlers.CreateChecklistItem)
			checklists.PATCH("/:checklist_id/items/:item_id", handlers.UpdateChecklistItem)
			checklists.POST("/:checklist_id/items/:item_id/move", handlers.MoveChecklistItem)
			checklists.DELETE("/:checklist_id/items/:item_id", handlers.DeleteChecklistItem)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.POST("/:notification_id/read", handlers.MarkNotificationRead)
			notifications.POST("/read-all", handlers.MarkAllNotificationsRead)
		}
	}

	return r
}
