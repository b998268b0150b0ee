package httpadapter

import (
	"context"
	"log/slog"

	"ratehub/contexts/community-feedback/review-service/application"
	"ratehub/contexts/community-feedback/review-service/domain/entities"
	"ratehub/contexts/community-feedback/review-service/ports"
	httptransport "ratehub/contexts/community-feedback/review-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListReviewsHandler(ctx context.Context, titleID string) ([]httptransport.ReviewResponse, error) {
	reviews, err := h.Service.ListReviews(ctx, titleID)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, reviewResponseFromEntity(review))
	}
	return items, nil
}

func (h Handler) GetReviewHandler(ctx context.Context, titleID, reviewID string) (httptransport.ReviewResponse, error) {
	review, err := h.Service.GetReview(ctx, titleID, reviewID)
	if err != nil {
		return httptransport.ReviewResponse{}, err
	}
	return reviewResponseFromEntity(review), nil
}

func (h Handler) CreateReviewHandler(ctx context.Context, titleID string, author application.Author, req httptransport.CreateReviewRequest) (httptransport.ReviewResponse, error) {
	review, err := h.Service.CreateReview(ctx, titleID, author, req.Text, req.Score)
	if err != nil {
		return httptransport.ReviewResponse{}, err
	}
	return reviewResponseFromEntity(review), nil
}

func (h Handler) UpdateReviewHandler(ctx context.Context, titleID, reviewID string, req httptransport.UpdateReviewRequest) (httptransport.ReviewResponse, error) {
	review, err := h.Service.UpdateReview(ctx, titleID, reviewID, ports.ReviewUpdate{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		return httptransport.ReviewResponse{}, err
	}
	return reviewResponseFromEntity(review), nil
}

func (h Handler) DeleteReviewHandler(ctx context.Context, titleID, reviewID string) error {
	return h.Service.DeleteReview(ctx, titleID, reviewID)
}

func (h Handler) ListCommentsHandler(ctx context.Context, titleID, reviewID string) ([]httptransport.CommentResponse, error) {
	comments, err := h.Service.ListComments(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, commentResponseFromEntity(comment))
	}
	return items, nil
}

func (h Handler) GetCommentHandler(ctx context.Context, titleID, reviewID, commentID string) (httptransport.CommentResponse, error) {
	comment, err := h.Service.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return httptransport.CommentResponse{}, err
	}
	return commentResponseFromEntity(comment), nil
}

func (h Handler) CreateCommentHandler(ctx context.Context, titleID, reviewID string, author application.Author, req httptransport.CreateCommentRequest) (httptransport.CommentResponse, error) {
	comment, err := h.Service.CreateComment(ctx, titleID, reviewID, author, req.Text)
	if err != nil {
		return httptransport.CommentResponse{}, err
	}
	return commentResponseFromEntity(comment), nil
}

func (h Handler) UpdateCommentHandler(ctx context.Context, titleID, reviewID, commentID string, req httptransport.UpdateCommentRequest) (httptransport.CommentResponse, error) {
	comment, err := h.Service.UpdateComment(ctx, titleID, reviewID, commentID, ports.CommentUpdate{
		Text: req.Text,
	})
	if err != nil {
		return httptransport.CommentResponse{}, err
	}
	return commentResponseFromEntity(comment), nil
}

func (h Handler) DeleteCommentHandler(ctx context.Context, titleID, reviewID, commentID string) error {
	return h.Service.DeleteComment(ctx, titleID, reviewID, commentID)
}

func reviewResponseFromEntity(review entities.Review) httptransport.ReviewResponse {
	return httptransport.ReviewResponse{
		ID:      review.ID,
		Author:  review.AuthorUsername,
		Text:    review.Text,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
}

func commentResponseFromEntity(comment entities.Comment) httptransport.CommentResponse {
	return httptransport.CommentResponse{
		ID:      comment.ID,
		Author:  comment.AuthorUsername,
		Text:    comment.Text,
		PubDate: comment.PubDate,
	}
}
