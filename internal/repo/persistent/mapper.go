package persistent

import (
	"storypad/internal/entity"
	"storypad/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:            m.ID,
		Code:          m.Code,
		Slug:          m.Slug,
		Title:         m.Title,
		Author:        m.Author,
		Story:         m.Story,
		Delta:         m.Delta,
		StoryAmp:      m.StoryAmp,
		OwnerIdentity: m.OwnerIdentity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:            e.ID,
		Code:          e.Code,
		Slug:          e.Slug,
		Title:         e.Title,
		Author:        e.Author,
		Story:         e.Story,
		Delta:         e.Delta,
		StoryAmp:      e.StoryAmp,
		OwnerIdentity: e.OwnerIdentity,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
