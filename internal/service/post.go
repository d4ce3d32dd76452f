package service

import (
	"context"
	"errors"
	"fmt"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
	"volunteer-backend/internal/repository"
)

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) SearchPosts(ctx context.Context, search string) ([]domain.Post, error) {
	return s.postRepo.Search(ctx, search)
}

func (s *postService) FeaturedPosts(ctx context.Context) ([]domain.Post, error) {
	return s.postRepo.ListSoonestDeadline(ctx, FeaturedPostLimit)
}

func (s *postService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *postService) ListOrganizerPosts(ctx context.Context, callerEmail, email string) ([]domain.Post, error) {
	if callerEmail != email {
		return nil, domain.ErrForbidden
	}
	return s.postRepo.ListByOrganizer(ctx, email)
}

// CreatePost stores a new post owned by the caller. The organizer email
// defaults to the caller and may not name anyone else.
func (s *postService) CreatePost(ctx context.Context, callerEmail string, post *domain.Post) (*domain.WriteResult, error) {
	logger.EnterMethod(ctx, "postService.CreatePost", "caller", callerEmail)

	if post.Organizer.Email == "" {
		post.Organizer.Email = callerEmail
	}
	if !post.OwnedBy(callerEmail) {
		logger.ExitMethodWithError(ctx, "postService.CreatePost", domain.ErrForbidden)
		return nil, domain.ErrForbidden
	}
	post.ID = ""
	if err := post.Validate(); err != nil {
		logger.ExitMethodWithError(ctx, "postService.CreatePost", err)
		return nil, err
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		logger.ExitMethodWithError(ctx, "postService.CreatePost", err)
		return nil, fmt.Errorf("create post: %w", err)
	}

	logger.ExitMethod(ctx, "postService.CreatePost", "postID", post.ID)
	return domain.InsertResult(post.ID), nil
}

func (s *postService) UpdatePost(ctx context.Context, callerEmail, id string, patch *domain.PostPatch) (*domain.WriteResult, error) {
	logger.EnterMethod(ctx, "postService.UpdatePost", "caller", callerEmail, "postID", id)

	if err := patch.Validate(); err != nil {
		logger.ExitMethodWithError(ctx, "postService.UpdatePost", err)
		return nil, err
	}
	matched, err := s.authorizeOwner(ctx, callerEmail, id)
	if err != nil {
		logger.ExitMethodWithError(ctx, "postService.UpdatePost", err)
		return nil, err
	}
	if !matched {
		return domain.UpdateResult(0, 0), nil
	}

	res, err := s.postRepo.Update(ctx, id, patch)
	if err != nil {
		logger.ExitMethodWithError(ctx, "postService.UpdatePost", err)
		return nil, fmt.Errorf("update post: %w", err)
	}
	logger.ExitMethod(ctx, "postService.UpdatePost")
	return res, nil
}

func (s *postService) DeletePost(ctx context.Context, callerEmail, id string) (*domain.WriteResult, error) {
	logger.EnterMethod(ctx, "postService.DeletePost", "caller", callerEmail, "postID", id)

	matched, err := s.authorizeOwner(ctx, callerEmail, id)
	if err != nil {
		logger.ExitMethodWithError(ctx, "postService.DeletePost", err)
		return nil, err
	}
	if !matched {
		return domain.DeleteResult(0), nil
	}

	res, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		logger.ExitMethodWithError(ctx, "postService.DeletePost", err)
		return nil, fmt.Errorf("delete post: %w", err)
	}
	logger.ExitMethod(ctx, "postService.DeletePost")
	return res, nil
}

// authorizeOwner reports whether the post exists and fails with ErrForbidden
// when it belongs to someone other than the caller.
func (s *postService) authorizeOwner(ctx context.Context, callerEmail, id string) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !post.OwnedBy(callerEmail) {
		return false, domain.ErrForbidden
	}
	return true, nil
}
