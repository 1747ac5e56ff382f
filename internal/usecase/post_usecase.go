package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storypad/internal/apperr"
	"storypad/internal/entity"
	"storypad/internal/repo/persistent"
	"storypad/internal/sanitize"

	"github.com/redis/go-redis/v9"
)

const postCacheTTL = 24 * time.Hour

type SaveInput struct {
	Title  string
	Author string
	Story  string
	Delta  string
	Code   string
}

// SaveResult is deliberately minimal: the edit credential, the public
// identifier and the public URL. Never the content or the owner.
type SaveResult struct {
	Code string `json:"code"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

type PostUseCase interface {
	Save(ctx context.Context, in SaveInput, ownerIdentity string) (*SaveResult, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Post, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	redisClient *redis.Client
}

// NewPostUseCase builds the post service. redisClient may be nil; the slug
// cache is then skipped.
func NewPostUseCase(postRepo persistent.PostRepository, redisClient *redis.Client) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		redisClient: redisClient,
	}
}

// Save creates or edits a post. The branch is chosen on presence of the raw
// code field: sanitization of the code happens after the branch decision, so a
// code that sanitizes to nothing is an edit of a nonexistent post, not a
// create.
func (uc *postUseCase) Save(ctx context.Context, in SaveInput, ownerIdentity string) (*SaveResult, error) {
	title := sanitize.Plain(in.Title)
	author := sanitize.Plain(in.Author)
	story := sanitize.Rich(in.Story)
	storyAmp := sanitize.AMPStory(story)

	if in.Code == "" {
		post := &entity.Post{
			Title:         title,
			Author:        author,
			Story:         story,
			Delta:         in.Delta,
			StoryAmp:      storyAmp,
			OwnerIdentity: ownerIdentity,
		}
		if err := uc.postRepo.Create(ctx, post); err != nil {
			return nil, err
		}
		return &SaveResult{Code: post.Code, Slug: post.Slug, URL: post.URL()}, nil
	}

	code := sanitize.Plain(in.Code)
	post, err := uc.postRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !post.Editable(ownerIdentity) {
		return nil, apperr.Forbidden("not allowed to edit this post")
	}

	post.Title = title
	post.Author = author
	post.Story = story
	post.Delta = in.Delta
	post.StoryAmp = storyAmp

	if err := uc.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx, post.Slug)

	return &SaveResult{Code: post.Code, Slug: post.Slug, URL: post.URL()}, nil
}

// GetBySlug resolves a post for rendering, read-through cached by slug.
func (uc *postUseCase) GetBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	if uc.redisClient != nil {
		if cached, err := uc.redisClient.Get(ctx, cacheKey(slug)).Result(); err == nil {
			var post entity.Post
			if err := json.Unmarshal([]byte(cached), &post); err == nil {
				return &post, nil
			}
		}
	}

	post, err := uc.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	uc.cachePost(ctx, post)
	return post, nil
}

func (uc *postUseCase) cachePost(ctx context.Context, post *entity.Post) {
	if uc.redisClient == nil {
		return
	}
	data, err := json.Marshal(post)
	if err != nil {
		return
	}
	// Best effort; a cache failure never fails the request.
	uc.redisClient.Set(ctx, cacheKey(post.Slug), data, postCacheTTL)
}

func (uc *postUseCase) invalidateCache(ctx context.Context, slug string) {
	if uc.redisClient == nil {
		return
	}
	uc.redisClient.Del(ctx, cacheKey(slug))
}

func cacheKey(slug string) string {
	return fmt.Sprintf("post:slug:%s", slug)
}
