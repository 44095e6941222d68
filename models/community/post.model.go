package community

import (
	"incubator/models"
	"time"
)

// Post is a forum thread
type Post struct {
	models.UUIDModel
	UserID        string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Title         string    `json:"title" gorm:"type:varchar(255);not null"`
	Content       string    `json:"content" gorm:"type:text;not null"`
	Category      string    `json:"category" gorm:"type:varchar(50);index;not null"`
	LikesCount    int       `json:"likes_count" gorm:"default:0"`
	CommentsCount int       `json:"comments_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "community_posts" }

type Comment struct {
	models.UUIDModel
	PostID    string    `json:"post_id" gorm:"type:varchar(36);index;not null"`
	Post      *Post     `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string { return "community_comments" }

// Like is unique per (post, user)
type Like struct {
	models.UUIDModel
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_post_user"`
	Post      *Post     `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_post_user"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "community_likes" }
