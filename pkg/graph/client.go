// Package graph talks to the remote collaboration platform's chat API:
// listing conversations, fetching messages with server-side modified-since
// filtering, and following next-links until the server reports no further
// page. Rate-limited and transiently failing fetches are retried with
// exponential backoff; everything else fails on first occurrence.
package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the production endpoint of the chat API.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// maxAttempts bounds how many times one paginated fetch is tried in total.
const maxAttempts = 3

// defaultBackoff is the attempt-indexed wait between retries.
var defaultBackoff = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// ConversationSource is the contract the rest of the system consumes for
// remote conversation data. Client implements it against the live API;
// FixtureClient implements it with canned data for credential-less
// environments. Which one is used is decided by the composition root.
type ConversationSource interface {
	// ListConversations returns conversations with activity at or after
	// now-activitySince, newest first, truncated to limit.
	ListConversations(ctx context.Context, activitySince time.Duration, limit int) ([]Conversation, error)

	// ListMessages returns every message in the conversation, optionally
	// filtered server-side to those modified strictly after since. All
	// pages are flattened into one result in page order.
	ListMessages(ctx context.Context, conversationID string, since *time.Time) ([]Message, error)
}

// Client is the live ConversationSource. The credential is handed in by an
// external auth component as an oauth2.TokenSource; the client never
// acquires or refreshes tokens itself.
type Client struct {
	http    *resty.Client
	tokens  oauth2.TokenSource
	backoff []time.Duration
	logger  zerolog.Logger
}

// NewClient creates a live client. baseURL may be empty to use the
// production endpoint.
func NewClient(baseURL string, tokens oauth2.TokenSource, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second),
		tokens:  tokens,
		backoff: defaultBackoff,
		logger:  logger.With().Str("component", "graph").Logger(),
	}
}

// ListConversations implements ConversationSource.
func (c *Client) ListConversations(ctx context.Context, activitySince time.Duration, limit int) ([]Conversation, error) {
	items, err := c.fetchAll(ctx, "listConversations", "/me/chats?$top=50")
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-activitySince)
	conversations := make([]Conversation, 0, len(items))
	for _, item := range items {
		if item.LastUpdatedTime.Before(cutoff) {
			continue
		}
		conversations = append(conversations, item.toConversation())
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastUpdated.After(conversations[j].LastUpdated)
	})
	if limit > 0 && len(conversations) > limit {
		conversations = conversations[:limit]
	}
	return conversations, nil
}

// ListMessages implements ConversationSource.
func (c *Client) ListMessages(ctx context.Context, conversationID string, since *time.Time) ([]Message, error) {
	path := fmt.Sprintf("/me/chats/%s/messages?$top=50", url.PathEscape(conversationID))
	if since != nil {
		filter := fmt.Sprintf("lastModifiedDateTime gt %s", since.UTC().Format(time.RFC3339))
		path += "&$filter=" + url.QueryEscape(filter)
	}

	items, err := c.fetchAll(ctx, "listMessages", path)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(items))
	for _, item := range items {
		messages = append(messages, item.toMessage(conversationID))
	}
	return messages, nil
}

// fetchAll follows next-links from firstURL until the server stops
// returning one, flattening every page's records in page order. The retry
// policy covers the whole paginated fetch: a failure on page three restarts
// from page one on the next attempt.
func (c *Client) fetchAll(ctx context.Context, op, firstURL string) ([]wireItem, error) {
	var lastErr error
	lastStatus := 0

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			wait := c.backoff[attempt-1]
			c.logger.Warn().
				Str("op", op).
				Int("attempt", attempt+1).
				Dur("backoff", wait).
				Msg("retrying paginated fetch")
			select {
			case <-ctx.Done():
				return nil, &RemoteAPIError{Op: op, StatusCode: lastStatus, Attempts: attempt, Err: ctx.Err()}
			case <-time.After(wait):
			}
		}

		items, status, err := c.fetchPages(ctx, firstURL)
		if err == nil {
			return items, nil
		}
		lastErr, lastStatus = err, status

		if !retryableStatus(status) && !isConnectionError(err) {
			return nil, &RemoteAPIError{Op: op, StatusCode: status, Attempts: attempt + 1, Err: err}
		}
	}

	return nil, &RemoteAPIError{Op: op, StatusCode: lastStatus, Attempts: maxAttempts, Err: lastErr}
}

// fetchPages performs one attempt of the full pagination walk. It returns
// the HTTP status of the failing page (0 for transport errors) so the
// caller can classify the failure.
func (c *Client) fetchPages(ctx context.Context, firstURL string) ([]wireItem, int, error) {
	var items []wireItem
	next := firstURL

	for next != "" {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, 0, fmt.Errorf("acquire credential: %w", errPermanent(err))
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetAuthToken(token.AccessToken).
			Get(next)
		if err != nil {
			return nil, 0, fmt.Errorf("request %s: %w", next, err)
		}
		if resp.IsError() {
			return nil, resp.StatusCode(), fmt.Errorf("request %s: status %d: %s", next, resp.StatusCode(), resp.String())
		}

		var p page
		if err := json.Unmarshal(resp.Body(), &p); err != nil {
			return nil, 0, fmt.Errorf("decode page %s: %w", next, errPermanent(err))
		}

		items = append(items, p.Value...)
		next = p.NextLink
	}

	return items, 0, nil
}

// permanentError marks failures that must never be retried, such as a
// broken credential or an undecodable response body.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func errPermanent(err error) error { return &permanentError{err: err} }

// isConnectionError reports whether err is a transport-level failure worth
// retrying (refused connection, reset, timeout).
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var perm *permanentError
	if errors.As(err, &perm) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
