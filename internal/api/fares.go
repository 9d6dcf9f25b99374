package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"yatra/internal/domain"
)

// EstimateFare prices a trip on a route. An empty user type is sent as
// "default".
func (c *Client) EstimateFare(ctx context.Context, q domain.FareQuery) (domain.FareEstimate, error) {
	var out domain.FareEstimate
	if err := checkInput(q); err != nil {
		return out, err
	}
	if q.UserType == "" {
		q.UserType = domain.UserDefault
	}
	params := url.Values{}
	params.Set("route_id", strconv.FormatInt(q.RouteID, 10))
	params.Set("transfers", strconv.Itoa(q.Transfers))
	params.Set("user_type", string(q.UserType))
	err := c.Do(ctx, Request{Path: "/fares/estimate/", Query: params}, &out)
	return out, err
}

// PassOptions lists purchasable passes.
func (c *Client) PassOptions(ctx context.Context) ([]domain.PassOption, error) {
	var out []domain.PassOption
	err := c.Do(ctx, Request{Path: "/passes/options/"}, &out)
	return out, err
}

// QuotePass asks for the cheapest pass for a travel pattern.
func (c *Client) QuotePass(ctx context.Context, in domain.QuoteInput) (domain.PassQuote, error) {
	var out domain.PassQuote
	if err := checkInput(in); err != nil {
		return out, err
	}
	if in.UserType == "" {
		in.UserType = domain.UserDefault
	}
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/passes/quote/", Body: in}, &out)
	return out, err
}
