package handler

import (
	"time"

	"github.com/RigelNana/arktube/models"
	"github.com/RigelNana/arktube/repository"
	"github.com/google/uuid"
)

type ownerDTO struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	ImageURL         string    `json:"imageUrl"`
	SubscriberCount  int64     `json:"subscriberCount"`
	ViewerSubscribed bool      `json:"viewerSubscribed"`
}

type videoDTO struct {
	ID             uuid.UUID            `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	ThumbnailURL   *string              `json:"thumbnailUrl"`
	PreviewURL     *string              `json:"previewUrl"`
	Duration       int64                `json:"duration"`
	Visibility     models.Visibility    `json:"visibility"`
	MuxStatus      string               `json:"muxStatus"`
	MuxPlaybackID  *string              `json:"muxPlaybackId"`
	CategoryID     *uuid.UUID           `json:"categoryId"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
	User           ownerDTO             `json:"user"`
	ViewCount      int64                `json:"viewCount"`
	LikeCount      int64                `json:"likeCount"`
	DislikeCount   int64                `json:"dislikeCount"`
	ViewerReaction *models.ReactionType `json:"viewerReaction"`
}

func videoDTOFrom(r repository.VideoRow) videoDTO {
	return videoDTO{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		ThumbnailURL:  r.ThumbnailURL,
		PreviewURL:    r.PreviewURL,
		Duration:      r.Duration,
		Visibility:    r.Visibility,
		MuxStatus:     r.MuxStatus,
		MuxPlaybackID: r.MuxPlaybackID,
		CategoryID:    r.CategoryID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		User: ownerDTO{
			ID:               r.UserID,
			Name:             r.UserName,
			ImageURL:         r.UserImageURL,
			SubscriberCount:  r.SubscriberCount,
			ViewerSubscribed: r.ViewerSubscribed,
		},
		ViewCount:      r.ViewCount,
		LikeCount:      r.LikeCount,
		DislikeCount:   r.DislikeCount,
		ViewerReaction: r.ViewerReaction,
	}
}

type authorDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"imageUrl"`
}

type commentDTO struct {
	ID             uuid.UUID            `json:"id"`
	VideoID        uuid.UUID            `json:"videoId"`
	Value          string               `json:"value"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
	User           authorDTO            `json:"user"`
	LikeCount      int64                `json:"likeCount"`
	DislikeCount   int64                `json:"dislikeCount"`
	ViewerReaction *models.ReactionType `json:"viewerReaction"`
}

func commentDTOFrom(r repository.CommentRow) commentDTO {
	return commentDTO{
		ID:             r.ID,
		VideoID:        r.VideoID,
		Value:          r.Value,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		User:           authorDTO{ID: r.UserID, Name: r.UserName, ImageURL: r.UserImageURL},
		LikeCount:      r.LikeCount,
		DislikeCount:   r.DislikeCount,
		ViewerReaction: r.ViewerReaction,
	}
}

type subscriptionDTO struct {
	CreatorID       uuid.UUID `json:"creatorId"`
	Name            string    `json:"name"`
	ImageURL        string    `json:"imageUrl"`
	SubscriberCount int64     `json:"subscriberCount"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func subscriptionDTOFrom(r repository.SubscriptionRow) subscriptionDTO {
	return subscriptionDTO{
		CreatorID:       r.CreatorID,
		Name:            r.Name,
		ImageURL:        r.ImageURL,
		SubscriberCount: r.SubscriberCount,
		UpdatedAt:       r.UpdatedAt,
	}
}

type profileDTO struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	ImageURL         string    `json:"imageUrl"`
	CreatedAt        time.Time `json:"createdAt"`
	SubscriberCount  int64     `json:"subscriberCount"`
	VideoCount       int64     `json:"videoCount"`
	ViewerSubscribed bool      `json:"viewerSubscribed"`
}

func profileDTOFrom(r *repository.UserProfileRow) profileDTO {
	return profileDTO{
		ID:               r.ID,
		Name:             r.Name,
		ImageURL:         r.ImageURL,
		CreatedAt:        r.CreatedAt,
		SubscriberCount:  r.SubscriberCount,
		VideoCount:       r.VideoCount,
		ViewerSubscribed: r.ViewerSubscribed,
	}
}

type reactionRequest struct {
	Type models.ReactionType `json:"type" binding:"required"`
}
