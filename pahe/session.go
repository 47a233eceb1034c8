package pahe

import (
	"context"
	"fmt"

	"github.com/anisan-cli/anipahe/log"
	"github.com/samber/lo"
)

// ResolveSession finds the session id of the series titled title.
// The entry whose title equals title verbatim is preferred, otherwise the first one is used.
// hintID is only logged; the search runs on the title alone.
func (c *Client) ResolveSession(ctx context.Context, title, hintID string) (string, error) {
	items, err := c.search(ctx, title, 0)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrNotFound
	}

	item, ok := lo.Find(items, func(i searchItem) bool { return i.Title == title })
	if !ok {
		item = items[0]
	}

	if item.Session == "" {
		return "", fmt.Errorf("%w: %q has no session", ErrSessionResolution, item.Title)
	}

	log.FromContext(ctx).WithFields(log.Fields{
		"title":   title,
		"hint_id": hintID,
		"session": item.Session,
	}).Debug("resolved session")
	return item.Session, nil
}
