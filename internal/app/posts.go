package service

import (
	"context"
	"encoding/json"

	"github.com/okian/collections/internal/adapters/repository"
	"github.com/okian/collections/internal/domain/model"
	"github.com/okian/collections/pkg/logger"
	"github.com/okian/collections/pkg/metrics"
)

// PostsCollection is the collection name used in logs and metrics.
const PostsCollection = "posts"

// PostInput is the create payload. Title is not validated and may be any JSON value; empty means absent.
type PostInput struct {
	Title json.RawMessage `json:"title"`
}

// PostService lists and creates posts.
type PostService struct {
	store  repository.Store[model.Post]
	logger logger.Logger
}

// NewPostService creates a post service over store.
func NewPostService(store repository.Store[model.Post], opts ...Option) *PostService {
	o := newOptions(opts)
	return &PostService{
		store:  store,
		logger: o.logger.Named(PostsCollection),
	}
}

// List returns all posts in insertion order.
func (s *PostService) List(ctx context.Context) []model.Post {
	posts := s.store.List(ctx)
	metrics.RecordCollectionOperation(PostsCollection, "list", outcomeOK)
	return posts
}

// Create appends a post with the next id.
func (s *PostService) Create(ctx context.Context, in PostInput) model.Post {
	p := s.store.Create(ctx, func(id int) model.Post {
		return model.Post{ID: id, Title: in.Title}
	})
	metrics.RecordCollectionOperation(PostsCollection, "create", outcomeOK)
	s.logger.Info(ctx, "post created", logger.Int("id", p.ID), logger.Bool("has_title", len(p.Title) > 0))
	return p
}

// Stats reports the collection size and id counter.
func (s *PostService) Stats(ctx context.Context) Stats {
	return Stats{
		Collection: PostsCollection,
		Records:    s.store.Count(ctx),
		NextID:     s.store.NextID(ctx),
	}
}
