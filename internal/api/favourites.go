package api

import (
	"context"
	"fmt"
	"net/http"

	"yatra/internal/domain"
)

// Favourites lists every saved journey.
func (c *Client) Favourites(ctx context.Context) ([]domain.Favourite, error) {
	var out []domain.Favourite
	err := c.Do(ctx, Request{Path: "/favourites/"}, &out)
	return out, err
}

// AddFavourite saves a route for the signed-in user.
func (c *Client) AddFavourite(ctx context.Context, in domain.FavouriteInput) (domain.Favourite, error) {
	var out domain.Favourite
	if err := checkInput(in); err != nil {
		return out, err
	}
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/favourites/", Body: in}, &out)
	return out, err
}

// DeleteFavourite removes favourite id. Unknown or foreign ids are a 404.
func (c *Client) DeleteFavourite(ctx context.Context, id int64) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/favourites/%d/", id)}, nil)
}

// UserFavourites lists the favourites of the signed-in user only.
func (c *Client) UserFavourites(ctx context.Context) ([]domain.Favourite, error) {
	var out []domain.Favourite
	err := c.Do(ctx, Request{Path: "/favourites/user/"}, &out)
	return out, err
}
