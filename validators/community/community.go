package communityValidator

import (
	"incubator/middleware"
	"incubator/validators"

	"github.com/gofiber/fiber/v2"
)

type PostListQuery struct {
	Category string `query:"category" validate:"max=50"`
	Limit    int    `query:"limit" validate:"gte=0,lte=200"`
	Offset   int    `query:"offset" validate:"gte=0"`
}

type CreatePostRequest struct {
	UserID   string `json:"user_id" validate:"required,max=36"`
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required,max=50"`
}

type UpdatePostRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content  *string `json:"content" validate:"omitempty,min=1"`
	Category *string `json:"category" validate:"omitempty,min=1,max=50"`
}

type CreateCommentRequest struct {
	UserID  string `json:"user_id" validate:"required,max=36"`
	Content string `json:"content" validate:"required"`
}

// UserRequest carries just the acting user, e.g. for likes
type UserRequest struct {
	UserID string `json:"user_id" validate:"required,max=36"`
}

func ListPosts() fiber.Handler {
	return validators.Query("validatedPostList", func(c *fiber.Ctx, req *PostListQuery) {
		if req.Limit == 0 {
			req.Limit = 50
		}
	})
}

func CreatePost() fiber.Handler {
	return validators.Body("validatedPost", func(c *fiber.Ctx, req *CreatePostRequest) {
		validators.Trim(&req.Title, &req.Content, &req.Category)
		req.UserID = middleware.ResolveUserID(c, req.UserID)
	})
}

func UpdatePost() fiber.Handler {
	return validators.Body[UpdatePostRequest]("validatedPostUpdate", nil)
}

func CreateComment() fiber.Handler {
	return validators.Body("validatedComment", func(c *fiber.Ctx, req *CreateCommentRequest) {
		validators.Trim(&req.Content)
		req.UserID = middleware.ResolveUserID(c, req.UserID)
	})
}

func ToggleLike() fiber.Handler {
	return validators.Body("validatedLike", func(c *fiber.Ctx, req *UserRequest) {
		req.UserID = middleware.ResolveUserID(c, req.UserID)
	})
}
