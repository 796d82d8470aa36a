package client

import (
	"context"
	"sync"

	"github.com/joshua-takyi/eventhive/internal/models"
	"github.com/joshua-takyi/eventhive/internal/search"
)

// Browser keeps the loaded listing and the view filtered by the current
// query. Both are replaced wholesale, never edited in place.
type Browser struct {
	client *Client

	mu       sync.RWMutex
	all      []*models.Event
	filtered []*models.Event
	query    string
}

func NewBrowser(c *Client) *Browser {
	return &Browser{client: c, all: []*models.Event{}, filtered: []*models.Event{}}
}

// Load fetches every event and resets the filtered view to the current query.
func (b *Browser) Load(ctx context.Context) error {
	events, err := b.client.ListEvents(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = events
	b.filtered = search.Filter(events, b.query)
	return nil
}

// Search sets the query and returns the new filtered view.
func (b *Browser) Search(query string) []*models.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = query
	b.filtered = search.Filter(b.all, query)
	return b.filtered
}

func (b *Browser) All() []*models.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.all
}

func (b *Browser) Filtered() []*models.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filtered
}

// Remove drops the event with id from both views.
func (b *Browser) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = without(b.all, id)
	b.filtered = without(b.filtered, id)
}

// Delete deletes the event on the server and then removes it locally.
func (b *Browser) Delete(ctx context.Context, id string) error {
	if err := b.client.DeleteEvent(ctx, id); err != nil {
		return err
	}
	b.Remove(id)
	return nil
}

func without(events []*models.Event, id string) []*models.Event {
	out := make([]*models.Event, 0, len(events))
	for _, e := range events {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
