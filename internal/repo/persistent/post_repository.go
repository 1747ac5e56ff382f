package persistent

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"storypad/internal/apperr"
	"storypad/internal/entity"
	"storypad/internal/model"

	"gorm.io/gorm"
)

// tokenAlphabet excludes characters that read ambiguously when shared by hand
// (i, l, o, 0, 1).
const tokenAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// maxMintAttempts bounds regeneration on a code/slug collision before the
// insert surfaces a conflict.
const maxMintAttempts = 5

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, post *entity.Post) error
	FindBySlug(ctx context.Context, slug string) (*entity.Post, error)
	FindByCode(ctx context.Context, code string) (*entity.Post, error)
}

type postRepository struct {
	db      *gorm.DB
	codeLen int
	slugLen int
}

func NewPostRepository(db *gorm.DB, codeLen, slugLen int) PostRepository {
	return &postRepository{db: db, codeLen: codeLen, slugLen: slugLen}
}

// Create inserts the post, minting a fresh code and slug. The uniqueness
// invariant lives in the database; on a collision both tokens are regenerated
// and the insert retried up to maxMintAttempts times.
func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		code, err := randomToken(r.codeLen)
		if err != nil {
			return fmt.Errorf("failed to mint code: %w", err)
		}
		slug, err := randomToken(r.slugLen)
		if err != nil {
			return fmt.Errorf("failed to mint slug: %w", err)
		}

		postModel := ToPostModel(post)
		postModel.ID = ""
		postModel.Code = code
		postModel.Slug = slug

		err = r.db.WithContext(ctx).Create(postModel).Error
		if err == nil {
			*post = *ToPostEntity(postModel)
			return nil
		}
		if isUniqueViolation(err) {
			continue
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return apperr.Conflict("could not mint a unique post identifier")
}

// Update overwrites the mutable fields in a single statement. Code, slug and
// owner identity are never touched.
func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	res := r.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":     post.Title,
			"author":    post.Author,
			"story":     post.Story,
			"delta":     post.Delta,
			"story_amp": post.StoryAmp,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *postRepository) FindByCode(ctx context.Context, code string) (*entity.Post, error) {
	return r.findOne(ctx, "code = ?", code)
}

func (r *postRepository) findOne(ctx context.Context, query string, arg string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&postModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	return ToPostEntity(&postModel), nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite driver errors are not always translated
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func randomToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}
