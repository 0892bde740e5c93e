package external

import (
	"context"
	"encoding/json"
)

// Event browsing and creator dashboard endpoints. These are forwarded
// verbatim; the storefront adds caching and auth but never reshapes them.

func (c *Client) ListEvents(ctx context.Context, token, rawQuery string) (json.RawMessage, error) {
	path := "/events"
	if rawQuery != "" {
		path += "?" + rawQuery
	}
	return c.doRaw(ctx, "GET", path, token, nil)
}

func (c *Client) GetEvent(ctx context.Context, token, eventID string) (json.RawMessage, error) {
	return c.doRaw(ctx, "GET", "/events/"+eventID, token, nil)
}

func (c *Client) UpdateEvent(ctx context.Context, token, eventID string, body json.RawMessage) (json.RawMessage, error) {
	return c.doRaw(ctx, "PUT", "/events/"+eventID, token, body)
}

func (c *Client) GetEventStats(ctx context.Context, token, eventID string) (json.RawMessage, error) {
	return c.doRaw(ctx, "GET", "/events/"+eventID+"/stats", token, nil)
}

func (c *Client) ListTicketTypes(ctx context.Context, token, eventID string) (json.RawMessage, error) {
	return c.doRaw(ctx, "GET", "/events/"+eventID+"/tickets", token, nil)
}

func (c *Client) CreateTicketType(ctx context.Context, token, eventID string, body json.RawMessage) (json.RawMessage, error) {
	return c.doRaw(ctx, "POST", "/events/"+eventID+"/tickets", token, body)
}

func (c *Client) UpdateTicketType(ctx context.Context, token, eventID, ticketID string, body json.RawMessage) (json.RawMessage, error) {
	return c.doRaw(ctx, "PUT", "/events/"+eventID+"/tickets/"+ticketID, token, body)
}

func (c *Client) DeleteTicketType(ctx context.Context, token, eventID, ticketID string) (json.RawMessage, error) {
	return c.doRaw(ctx, "DELETE", "/events/"+eventID+"/tickets/"+ticketID, token, nil)
}
