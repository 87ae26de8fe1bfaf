package handler

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes wires all API routes. auth is the JWT middleware applied to
// routes that act on behalf of a user.
func RegisterRoutes(
	app *fiber.App,
	auth fiber.Handler,
	authH *AuthHandler,
	destH *DestinationHandler,
	communityH *CommunityHandler,
	plannerH *PlannerHandler,
	flightH *FlightHandler,
) {
	api := app.Group("/api/v1")

	api.Get("/health", destH.Health)

	// Accounts
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Get("/auth/profile", authH.Profile, auth)
	api.Put("/auth/tags", authH.UpdateTags, auth)
	api.Delete("/auth/account", authH.DeleteAccount, auth)

	// Destinations. Static segments are registered before the :id routes.
	api.Get("/destinations", destH.ListDestinations)
	api.Get("/destinations/search", destH.Search)
	api.Get("/destinations/search/keyword", destH.KeywordSearch)
	api.Get("/destinations/most-loved", destH.MostLoved)
	api.Get("/destinations/tags", destH.Tags)
	api.Get("/destinations/tag/:tag", destH.GetByTag)
	api.Get("/destinations/:id", destH.GetDestination)
	api.Get("/destinations/:id/reviews", destH.DestinationReviews)
	api.Post("/destinations/recommend", destH.Recommend, auth)

	// Likes
	api.Get("/likes", destH.UserLikes, auth)
	api.Post("/likes", destH.Like, auth)
	api.Delete("/likes/:id", destH.Unlike, auth)

	// Reviews
	api.Get("/reviews", destH.UserReviews, auth)
	api.Post("/reviews", destH.CreateReview, auth)

	// Community board
	api.Get("/posts", communityH.ListPosts)
	api.Get("/posts/:id", communityH.GetPost)
	api.Post("/posts", communityH.CreatePost, auth)
	api.Delete("/posts/:id", communityH.DeletePost, auth)
	api.Post("/posts/:id/comments", communityH.CreateComment, auth)
	api.Delete("/posts/:id/comments/:commentId", communityH.DeleteComment, auth)

	// Trip planners
	api.Get("/planners", plannerH.List, auth)
	api.Post("/planners", plannerH.Create, auth)
	api.Get("/planners/:id", plannerH.Get, auth)
	api.Put("/planners/:id", plannerH.Update, auth)
	api.Delete("/planners/:id", plannerH.Delete, auth)
	api.Post("/planners/:id/items", plannerH.AddItem, auth)
	api.Put("/planners/:id/items/reorder", plannerH.ReorderItems, auth)
	api.Delete("/planners/:id/items/:itemId", plannerH.RemoveItem, auth)

	// Flights
	api.Get("/flights/airports", flightH.Airports)
	api.Get("/flights/search", flightH.Search)
}
