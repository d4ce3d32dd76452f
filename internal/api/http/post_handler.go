package http

import (
	"errors"
	"net/http"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/service"

	"github.com/gorilla/mux"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListPosts handles GET /posts?search=
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.SearchPosts(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, err, "Server error fetching posts.")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// FeaturedPosts handles GET /featured-posts
func (h *PostHandler) FeaturedPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.FeaturedPosts(r.Context())
	if err != nil {
		writeError(w, r, err, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /post/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.GetPost(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, domain.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		writeError(w, r, err, "Server error fetching post.")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// MyPosts handles GET /my-posts/{email}
func (h *PostHandler) MyPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListOrganizerPosts(r.Context(), callerEmail(r), mux.Vars(r)["email"])
	if err != nil {
		writeError(w, r, err, "Server error.")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var post domain.Post
	if err := decodeJSON(w, r, &post); err != nil {
		writeError(w, r, err, "Failed to add post.")
		return
	}

	res, err := h.postService.CreatePost(r.Context(), callerEmail(r), &post)
	if err != nil {
		writeError(w, r, err, "Failed to add post.")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdatePost handles PUT /post/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err, "Failed to update post.")
		return
	}
	patch, err := domain.ParsePostPatch(body)
	if err != nil {
		writeError(w, r, err, "Failed to update post.")
		return
	}

	res, err := h.postService.UpdatePost(r.Context(), callerEmail(r), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, r, err, "Failed to update post.")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DeletePost handles DELETE /post/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	res, err := h.postService.DeletePost(r.Context(), callerEmail(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, "Failed to delete post.")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
