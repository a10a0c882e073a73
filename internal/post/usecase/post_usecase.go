package usecase

import (
	postdomain "blog-backend/internal/post/domain"
	postdto "blog-backend/internal/post/dto"
	"blog-backend/internal/post/repository"
	"blog-backend/pkg/apperror"
)

// postUsecase implements PostUsecase interface
type postUsecase struct {
	postRepo repository.PostRepository
}

// NewPostUsecase creates a new instance of postUsecase
func NewPostUsecase(postRepo repository.PostRepository) PostUsecase {
	return &postUsecase{
		postRepo: postRepo,
	}
}

func (u *postUsecase) CreatePost(authorID string, req *postdto.CreatePostRequest) (*postdomain.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post := &postdomain.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}

	if err := u.postRepo.Create(post); err != nil {
		return nil, err
	}

	return post, nil
}

func (u *postUsecase) GetPostByID(id string) (*postdomain.Post, error) {
	post, err := u.postRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NewNotFound("No post found with that ID.")
	}
	return post, nil
}

func (u *postUsecase) ListPosts(q postdomain.ListQuery) ([]*postdomain.Post, int64, error) {
	return u.postRepo.List(q)
}

func (u *postUsecase) ListMyPosts(authorID string, skip, limit int) ([]*postdomain.Post, int64, error) {
	return u.postRepo.FindByAuthor(authorID, skip, limit)
}

func (u *postUsecase) UpdatePost(id, requesterID string, req *postdto.UpdatePostRequest) (*postdomain.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Ownership check is a separate read before the write. A concurrent
	// delete between the two simply makes the update report NotFound.
	post, err := u.postRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NewNotFound("The post you're trying to update does not exist.")
	}
	if post.AuthorID != requesterID {
		return nil, apperror.NewForbidden("You are not authorized to edit this post.")
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	if err := u.postRepo.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

func (u *postUsecase) DeletePost(id, requesterID string) error {
	post, err := u.postRepo.FindByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return apperror.NewNotFound("The post you're trying to delete does not exist.")
	}
	if post.AuthorID != requesterID {
		return apperror.NewForbidden("You are not authorized to delete this post.")
	}

	return u.postRepo.Delete(id)
}
