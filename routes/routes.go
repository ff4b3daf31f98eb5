package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"vesna/auth"
	"vesna/bookings"
	"vesna/bookmarks"
	"vesna/comments"
	"vesna/discover"
	"vesna/events"
	"vesna/likes"
	"vesna/live"
	"vesna/middleware"
	"vesna/profile"
	"vesna/ratelim"
	"vesna/tags"
	"vesna/tickets"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/eventpic/*filepath", http.Dir("static/eventpic"))
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddEventsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/events", middleware.OptionalAuth(events.GetEvents))
	router.GET("/api/events/cities", events.GetCities)
	router.POST("/api/events/event", rl.Limit(middleware.Authenticate(events.CreateEvent)))
	router.GET("/api/events/event/:eventid", middleware.OptionalAuth(events.GetEvent))
	router.PUT("/api/events/event/:eventid", middleware.Authenticate(events.EditEvent))
	router.DELETE("/api/events/event/:eventid", middleware.Authenticate(events.DeleteEvent))
	router.POST("/api/events/event/:eventid/banner", middleware.Authenticate(events.UploadBanner))
	router.POST("/api/events/event/:eventid/verify", middleware.Authenticate(events.VerifyEvent))
	router.POST("/api/events/event/:eventid/decline", middleware.Authenticate(events.DeclineEvent))
}

func AddBookingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/events/event/:eventid/book", rl.Limit(middleware.Authenticate(bookings.BookEvent)))
	router.DELETE("/api/events/event/:eventid/book", middleware.Authenticate(bookings.CancelBooking))
	router.GET("/api/events/event/:eventid/bookings", middleware.Authenticate(bookings.GetBookedUsers))
	router.GET("/api/bookings", middleware.Authenticate(bookings.GetMyBookings))
}

func AddTagRoutes(router *httprouter.Router) {
	router.GET("/api/tags", tags.GetTags)
	router.GET("/api/tags/:tagid", tags.GetTag)
	router.POST("/api/tags", middleware.Authenticate(tags.CreateTag))
	router.PUT("/api/tags/:tagid", middleware.Authenticate(tags.UpdateTag))
	router.DELETE("/api/tags/:tagid", middleware.Authenticate(tags.DeleteTag))
}

func AddLikesRoutes(router *httprouter.Router) {
	router.POST("/api/events/event/:eventid/like", middleware.Authenticate(likes.LikeEvent))
	router.DELETE("/api/events/event/:eventid/like", middleware.Authenticate(likes.UnlikeEvent))
	router.GET("/api/events/event/:eventid/likes", likes.GetLikeCount)
}

func AddBookmarkRoutes(router *httprouter.Router) {
	router.POST("/api/events/event/:eventid/bookmark", middleware.Authenticate(bookmarks.SaveEvent))
	router.DELETE("/api/events/event/:eventid/bookmark", middleware.Authenticate(bookmarks.UnsaveEvent))
	router.GET("/api/bookmarks", middleware.Authenticate(bookmarks.GetSavedEvents))
}

func AddCommentsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/events/event/:eventid/comments", comments.GetComments)
	router.POST("/api/events/event/:eventid/comments", rl.Limit(middleware.Authenticate(comments.CreateComment)))
	router.PUT("/api/comments/:commentid", middleware.Authenticate(comments.UpdateComment))
	router.DELETE("/api/comments/:commentid", middleware.Authenticate(comments.DeleteComment))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetMyData))
	router.PUT("/api/profile", middleware.Authenticate(profile.UpdateProfile))
	router.PUT("/api/profile/interests", middleware.Authenticate(profile.SetInterests))
	router.GET("/api/users/:userid", middleware.OptionalAuth(profile.GetUser))
	router.PUT("/api/users/:userid/status", middleware.Authenticate(profile.ChangeUserStatus))
}

func AddDiscoverRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/discover", rl.Limit(middleware.OptionalAuth(discover.RecommendEvents)))
}

func AddTicketRoutes(router *httprouter.Router) {
	router.GET("/api/events/event/:eventid/pass", middleware.Authenticate(tickets.PrintBookingPass))
	router.GET("/api/passes/verify", middleware.Authenticate(tickets.VerifyBookingPass))
}

func AddLiveRoutes(router *httprouter.Router) {
	router.GET("/ws/events/:eventid/seats", middleware.Authenticate(live.SeatUpdates))
}
