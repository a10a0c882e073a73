package delivery

import (
	postdto "blog-backend/internal/post/dto"
	"blog-backend/internal/post/usecase"
	"blog-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postUsecase usecase.PostUsecase
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postUsecase usecase.PostUsecase) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
	}
}

// GetAllPosts returns the public feed.
// GET /api/v1/posts?search=&sort=&skip=&limit=
func (h *PostHandler) GetAllPosts(c *gin.Context) {
	q := postdto.ParseListQuery(
		c.Query("search"),
		c.Query("sort"),
		c.Query("skip"),
		c.Query("limit"),
	)

	posts, total, err := h.postUsecase.ListPosts(q)
	if err != nil {
		c.Error(err)
		return
	}

	response.List(c, posts, total)
}

// GetMyPosts returns the authenticated user's posts.
// GET /api/v1/posts/me?skip=&limit=
func (h *PostHandler) GetMyPosts(c *gin.Context) {
	userID := c.GetString("userID")
	skip := postdto.ParseSkip(c.Query("skip"))
	limit := postdto.ParseLimit(c.Query("limit"))

	posts, total, err := h.postUsecase.ListMyPosts(userID, skip, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.List(c, posts, total)
}

// GetPostByID returns a single post.
// GET /api/v1/posts/:id
func (h *PostHandler) GetPostByID(c *gin.Context) {
	post, err := h.postUsecase.GetPostByID(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.OK(c, post)
}

// CreatePost creates a post owned by the authenticated user.
// POST /api/v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req postdto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	post, err := h.postUsecase.CreatePost(c.GetString("userID"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Created(c, post)
}

// UpdatePost applies a partial patch to an owned post.
// PUT /api/v1/posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req postdto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	post, err := h.postUsecase.UpdatePost(c.Param("id"), c.GetString("userID"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.OK(c, post)
}

// DeletePost permanently removes an owned post.
// DELETE /api/v1/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postUsecase.DeletePost(c.Param("id"), c.GetString("userID")); err != nil {
		c.Error(err)
		return
	}

	response.OKMessage(c, "Post deleted successfully")
}
