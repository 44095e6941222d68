package communityRoutes

import (
	controllers "incubator/controllers/community"
	validators "incubator/validators/community"

	"github.com/gofiber/fiber/v2"
)

func SetupCommunityRoutes(app *fiber.App, ctrl *controllers.CommunityController) {
	group := app.Group("/api/community")

	group.Get("/health", ctrl.Health)

	// Posts
	group.Get("/posts", validators.ListPosts(), ctrl.ListPosts)
	group.Post("/posts", validators.CreatePost(), ctrl.CreatePost)
	group.Get("/posts/:id", ctrl.GetPost)
	group.Put("/posts/:id", validators.UpdatePost(), ctrl.UpdatePost)
	group.Delete("/posts/:id", ctrl.DeletePost)

	// Comments
	group.Get("/posts/:id/comments", ctrl.ListComments)
	group.Post("/posts/:id/comments", validators.CreateComment(), ctrl.CreateComment)

	// Likes
	group.Post("/posts/:id/like", validators.ToggleLike(), ctrl.ToggleLike)
	group.Get("/posts/:id/likes", ctrl.GetLikes)
}
