package api

import (
	"context"
	"net/http"

	"yatra/internal/domain"
)

// Feedback lists all submitted feedback.
func (c *Client) Feedback(ctx context.Context) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := c.Do(ctx, Request{Path: "/feedback/"}, &out)
	return out, err
}

// SubmitFeedback posts a rated comment. The server assigns the sentiment.
func (c *Client) SubmitFeedback(ctx context.Context, in domain.FeedbackInput) (domain.Feedback, error) {
	var out domain.Feedback
	if err := checkInput(in); err != nil {
		return out, err
	}
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/feedback/", Body: in}, &out)
	return out, err
}

// RecentFeedback returns the latest entries, newest first.
func (c *Client) RecentFeedback(ctx context.Context) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := c.Do(ctx, Request{Path: "/feedback/recent/"}, &out)
	return out, err
}

// FeedbackStats returns totals and the sentiment breakdown.
func (c *Client) FeedbackStats(ctx context.Context) (domain.FeedbackStats, error) {
	var out domain.FeedbackStats
	err := c.Do(ctx, Request{Path: "/feedback/stats/"}, &out)
	return out, err
}

// UserFeedback lists the signed-in user's feedback.
func (c *Client) UserFeedback(ctx context.Context) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := c.Do(ctx, Request{Path: "/feedback/user/"}, &out)
	return out, err
}
