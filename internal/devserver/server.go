package devserver

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Server bundles the stub state, token settings and the websocket hub.
type Server struct {
	store     *memStore
	hub       *wsHub
	jwtSecret []byte
	tokenTTL  time.Duration
}

func New(jwtSecret string, tokenTTL time.Duration) *Server {
	return &Server{
		store:     newMemStore(),
		hub:       newWSHub(),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Router wires the same route tree the production backend exposes, plus the
// /ws feed.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/ws", s.serveWebSocket)

	apiGroup := r.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
		}

		protected := apiGroup.Group("/")
		protected.Use(s.authMiddleware())
		{
			user := protected.Group("/user")
			{
				user.GET("/profile", s.getProfile)
				user.PUT("/profile", s.updateProfile)
				user.GET("/:id", s.getUserByID)
			}

			skills := protected.Group("/skills")
			{
				skills.POST("", s.createSkill)
				skills.GET("", s.listSkills)
				skills.GET("/my", s.listMySkills)
				skills.GET("/:id", s.getSkill)
				skills.PUT("/:id", s.updateSkill)
				skills.DELETE("/:id", s.deleteSkill)
			}

			exchanges := protected.Group("/exchanges")
			{
				exchanges.POST("", s.createExchange)
				exchanges.GET("", s.listExchanges)
				exchanges.GET("/:id", s.getExchange)
				exchanges.PUT("/:id/status", s.updateExchangeStatus)
			}

			protected.GET("/matches", s.listMatches)

			reviews := protected.Group("/reviews")
			{
				reviews.POST("", s.createReview)
				reviews.GET("/my", s.listMyReviews)
				reviews.GET("/user/:userId", s.listUserReviews)
				reviews.GET("/user/:userId/rating", s.getUserRating)
				reviews.GET("/pending", s.listPendingReviews)
				reviews.PUT("/:id", s.updateReview)
				reviews.DELETE("/:id", s.deleteReview)
			}

			chat := protected.Group("/chat")
			{
				chat.GET("/rooms", s.listChatRooms)
				chat.POST("/rooms", s.createChatRoom)
				chat.GET("/rooms/:roomId/messages", s.getMessages)
				chat.POST("/rooms/:roomId/messages", s.sendMessage)
				chat.PUT("/rooms/:roomId/read", s.markMessagesRead)
				chat.DELETE("/rooms/:roomId", s.deleteChatRoom)
			}
		}
	}

	return r
}
