package controllers

import (
	"errors"
	"incubator/middleware"
	achievementModels "incubator/models/achievement"
	communityModels "incubator/models/community"
	"incubator/services"
	communityValidator "incubator/validators/community"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CommunityController struct {
	DB           *gorm.DB
	Achievements *services.AchievementService
}

func NewCommunityController(db *gorm.DB, achievements *services.AchievementService) *CommunityController {
	return &CommunityController{DB: db, Achievements: achievements}
}

// PostDetail is a post with its comments, oldest first
type PostDetail struct {
	communityModels.Post
	Comments []communityModels.Comment `json:"comments"`
}

func (cc *CommunityController) Health(c *fiber.Ctx) error {
	var count int64
	if err := cc.DB.Model(&communityModels.Post{}).Count(&count).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Community API is unhealthy!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Community API is running", fiber.Map{"posts_count": count})
}

func (cc *CommunityController) ListPosts(c *fiber.Ctx) error {
	reqData := c.Locals("validatedPostList").(*communityValidator.PostListQuery)

	db := cc.DB.WithContext(c.UserContext())
	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}

	var posts []communityModels.Post
	if err := db.Order("created_at desc, id desc").Limit(reqData.Limit).Offset(reqData.Offset).Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch posts!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Posts fetched successfully!", fiber.Map{
		"posts": posts,
		"count": len(posts),
	})
}

func (cc *CommunityController) CreatePost(c *fiber.Ctx) error {
	reqData := c.Locals("validatedPost").(*communityValidator.CreatePostRequest)
	ctx := c.UserContext()

	post := communityModels.Post{
		UserID:   reqData.UserID,
		Title:    reqData.Title,
		Content:  reqData.Content,
		Category: reqData.Category,
	}
	if err := cc.DB.WithContext(ctx).Create(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create post!", nil)
	}

	unlocked := cc.Achievements.CheckAndUnlock(ctx, post.UserID, achievementModels.RequirementFirstPost, nil)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Post created successfully!", fiber.Map{
		"post":                  post,
		"unlocked_achievements": unlocked,
	})
}

// statusFor maps a lookup error onto the response the post handlers share
func statusFor(c *fiber.Ctx, err error, failure string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, failure, nil)
}

func findPost(db *gorm.DB, id string) (*communityModels.Post, error) {
	var post communityModels.Post
	err := db.Where("id = ?", id).Take(&post).Error
	return &post, err
}

func comments(db *gorm.DB, postID string) ([]communityModels.Comment, error) {
	var list []communityModels.Comment
	err := db.Where("post_id = ?", postID).Order("created_at asc, id asc").Find(&list).Error
	return list, err
}

func (cc *CommunityController) GetPost(c *fiber.Ctx) error {
	db := cc.DB.WithContext(c.UserContext())
	post, err := findPost(db, c.Params("id"))
	if err != nil {
		return statusFor(c, err, "Failed to fetch post!")
	}
	list, err := comments(db, post.ID)
	if err != nil {
		return statusFor(c, err, "Failed to fetch post!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post fetched successfully!", PostDetail{Post: *post, Comments: list})
}

func (cc *CommunityController) UpdatePost(c *fiber.Ctx) error {
	reqData := c.Locals("validatedPostUpdate").(*communityValidator.UpdatePostRequest)
	db := cc.DB.WithContext(c.UserContext())

	post, err := findPost(db, c.Params("id"))
	if err != nil {
		return statusFor(c, err, "Failed to fetch post!")
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Content != nil {
		updates["content"] = *reqData.Content
	}
	if reqData.Category != nil {
		updates["category"] = *reqData.Category
	}
	if len(updates) > 0 {
		if err := db.Model(post).Updates(updates).Error; err != nil {
			return statusFor(c, err, "Failed to update post!")
		}
	}

	post, err = findPost(db, post.ID)
	if err != nil {
		return statusFor(c, err, "Failed to fetch post!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post updated successfully!", post)
}

// DeletePost removes likes and comments before the post itself
func (cc *CommunityController) DeletePost(c *fiber.Ctx) error {
	id := c.Params("id")
	err := cc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if _, err := findPost(tx, id); err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&communityModels.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&communityModels.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&communityModels.Post{}).Error
	})
	if err != nil {
		return statusFor(c, err, "Failed to delete post!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post deleted successfully!", nil)
}

func (cc *CommunityController) ListComments(c *fiber.Ctx) error {
	db := cc.DB.WithContext(c.UserContext())
	if _, err := findPost(db, c.Params("id")); err != nil {
		return statusFor(c, err, "Failed to fetch comments!")
	}
	list, err := comments(db, c.Params("id"))
	if err != nil {
		return statusFor(c, err, "Failed to fetch comments!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched successfully!", list)
}

func (cc *CommunityController) CreateComment(c *fiber.Ctx) error {
	reqData := c.Locals("validatedComment").(*communityValidator.CreateCommentRequest)

	var comment communityModels.Comment
	err := cc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		post, err := findPost(tx, c.Params("id"))
		if err != nil {
			return err
		}
		comment = communityModels.Comment{PostID: post.ID, UserID: reqData.UserID, Content: reqData.Content}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return syncCount(tx, post, "comments_count", &communityModels.Comment{})
	})
	if err != nil {
		return statusFor(c, err, "Failed to create comment!")
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment created successfully!", comment)
}

// syncCount recomputes a denormalized counter on post from its child rows
func syncCount(tx *gorm.DB, post *communityModels.Post, column string, child interface{}) error {
	var count int64
	if err := tx.Model(child).Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
		return err
	}
	if err := tx.Model(post).UpdateColumn(column, count).Error; err != nil {
		return err
	}
	if column == "likes_count" {
		post.LikesCount = int(count)
	} else {
		post.CommentsCount = int(count)
	}
	return nil
}

func (cc *CommunityController) ToggleLike(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLike").(*communityValidator.UserRequest)

	var (
		post  *communityModels.Post
		liked bool
	)
	err := cc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var err error
		if post, err = findPost(tx, c.Params("id")); err != nil {
			return err
		}

		result := tx.Where("post_id = ? AND user_id = ?", post.ID, reqData.UserID).Delete(&communityModels.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := tx.Create(&communityModels.Like{PostID: post.ID, UserID: reqData.UserID}).Error; err != nil {
				return err
			}
			liked = true
		}
		return syncCount(tx, post, "likes_count", &communityModels.Like{})
	})
	if err != nil {
		return statusFor(c, err, "Failed to toggle like!")
	}

	message := "Like removed"
	if liked {
		message = "Like added"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"liked":       liked,
		"likes_count": post.LikesCount,
	})
}

func (cc *CommunityController) GetLikes(c *fiber.Ctx) error {
	db := cc.DB.WithContext(c.UserContext())
	post, err := findPost(db, c.Params("id"))
	if err != nil {
		return statusFor(c, err, "Failed to fetch likes!")
	}

	var likes []communityModels.Like
	if err := db.Where("post_id = ?", post.ID).Find(&likes).Error; err != nil {
		return statusFor(c, err, "Failed to fetch likes!")
	}
	userID := middleware.ResolveUserID(c, c.Query("user_id"))
	userLiked := false
	for _, l := range likes {
		if l.UserID == userID {
			userLiked = true
			break
		}
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Likes fetched successfully!", fiber.Map{
		"likes_count": len(likes),
		"user_liked":  userLiked,
	})
}
