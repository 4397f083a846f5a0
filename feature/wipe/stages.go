package wipe

import (
	"context"
	"errors"
	"sort"

	"fansly-utils/core/api"
	"fansly-utils/core/pager"
	"fansly-utils/core/resolver"

	"go.uber.org/zap"
)

// inspectPayments walks the transaction ledger without mutating anything;
// it only contributes account ids to the reachable set.
func (d *Driver) inspectPayments(ctx context.Context) error {
	payments, err := pager.Collect(pager.Offset(pager.DefaultLimit, func(limit, offset int) ([]api.Payment, error) {
		return d.api.Payments(ctx, limit, offset)
	}))
	if err != nil {
		return err
	}
	for _, payment := range payments {
		d.reach(payment.AccountID)
	}
	d.log.Info("Inspected payments", zap.Int("count", len(payments)))
	return nil
}

// wipeLists empties and deletes every curated list.
func (d *Driver) wipeLists(ctx context.Context) error {
	lists, err := d.api.Lists(ctx)
	if err != nil {
		return err
	}
	for _, info := range lists {
		d.log.Info("Wiping list", zap.String("label", info.Label))

		items, err := d.api.ListItems(ctx, info.ID)
		if err != nil {
			return err
		}
		d.reach(items...)

		if err := d.api.RemoveListItems(ctx, info.ID, items); err != nil {
			return err
		}
		if err := d.api.DeleteList(ctx, info.ID); err != nil {
			return err
		}
	}
	return nil
}

// wipeCollections empties every vault album.
func (d *Driver) wipeCollections(ctx context.Context) error {
	albums, err := d.api.Albums(ctx)
	if err != nil {
		return err
	}
	for _, album := range albums {
		d.log.Info("Wiping collection", zap.String("title", album.Title))

		items, err := pager.Collect(pager.Offset(pager.DefaultLimit, func(limit, offset int) ([]api.AlbumItem, error) {
			return d.api.AlbumContent(ctx, album.ID, limit, offset)
		}))
		if err != nil {
			return err
		}

		itemIDs := make([]string, 0, len(items))
		for _, item := range items {
			itemIDs = append(itemIDs, item.ID)
			d.reach(item.AccountID)
		}
		if err := d.api.DeleteAlbumContent(ctx, album.ID, itemIDs); err != nil {
			return err
		}
	}
	return nil
}

// wipeComments walks the user's timeline feed with a before-cursor and
// deletes only posts the user authored. Posts already gone are skipped.
func (d *Driver) wipeComments(ctx context.Context) error {
	selfID, err := d.api.SelfID(ctx)
	if err != nil {
		return err
	}

	deleted := 0
	feed := pager.Before(pager.DefaultLimit, func(before string, limit int) ([]api.Post, error) {
		return d.api.TimelineBefore(ctx, selfID, before, limit)
	}, func(p api.Post) string { return p.ID })

	for posts, err := range feed {
		if err != nil {
			return err
		}
		for _, post := range posts {
			if post.AccountID != selfID {
				d.reach(post.AccountID)
				continue
			}
			if err := d.api.DeletePost(ctx, post.ID); err != nil {
				if errors.Is(err, api.ErrNotFound) {
					continue // already gone
				}
				return err
			}
			deleted++
		}
	}
	d.log.Info("Deleted own posts", zap.Int("count", deleted))
	return nil
}

// wipeMessages removes the user's side of every chat thread. Only messages
// sent by the user are deleted; the partner's side is never touched. A
// server error on a thread is a dead conversation and skips that thread.
func (d *Driver) wipeMessages(ctx context.Context) error {
	selfID, err := d.api.SelfID(ctx)
	if err != nil {
		return err
	}

	groups, err := pager.Collect(pager.Offset(pager.DefaultLimit, func(limit, offset int) ([]api.Group, error) {
		return d.api.Groups(ctx, limit, offset)
	}))
	if err != nil {
		return err
	}

	for _, group := range groups {
		d.reach(group.PartnerID)

		before := ""
		for {
			messages, err := d.api.Messages(ctx, group.ID, before, pager.DefaultLimit)
			if err != nil {
				if api.IsServerError(err) {
					d.log.Warn("Dead conversation, skipping",
						zap.String("group_id", group.ID),
					)
					break
				}
				return err
			}
			if len(messages) == 0 {
				break
			}

			for _, message := range messages {
				if message.SenderID != selfID {
					continue
				}
				if err := d.api.DeleteMessage(ctx, message.ID); err != nil {
					return err
				}
			}
			before = messages[len(messages)-1].ID
		}
	}
	return nil
}

// unfollowAll collects the full follow graph first, then unfollows each
// account; collecting first keeps the offset walk stable while the listing
// shrinks underneath the mutations.
func (d *Driver) unfollowAll(ctx context.Context) error {
	following, err := pager.Collect(pager.Offset(pager.DefaultLimit, func(limit, offset int) ([]string, error) {
		return d.api.Following(ctx, limit, offset)
	}))
	if err != nil {
		return err
	}

	d.reach(following...)
	d.log.Info("Unfollowing accounts", zap.Int("count", len(following)))
	for _, accountID := range following {
		if err := d.api.Unfollow(ctx, accountID); err != nil {
			return err
		}
	}
	return nil
}

// wipeNotes runs after every id-discovering stage so it sees the complete
// reachable set, resolves it in chunks and deletes every note found.
func (d *Driver) wipeNotes(ctx context.Context) error {
	ids := make([]string, 0, len(d.reachable))
	for id := range d.reachable {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, chunk := range resolver.Chunks(ids, api.DefaultChunkSize) {
		accounts, err := d.api.AccountsByIDs(ctx, chunk)
		if err != nil {
			return err
		}
		for _, account := range accounts {
			if len(account.Notes) == 0 {
				continue
			}
			d.log.Debug("Wiping notes",
				zap.Int("count", len(account.Notes)),
				zap.String("username", account.Username),
			)
			for _, note := range account.Notes {
				if err := d.api.DeleteNote(ctx, account.ID, note.ID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// wipeSubscriptions cancels every active subscription. Runs near the end
// because losing a subscription can revoke access earlier stages rely on.
func (d *Driver) wipeSubscriptions(ctx context.Context) error {
	subscriptions, err := d.api.Subscriptions(ctx)
	if err != nil {
		return err
	}
	for _, sub := range subscriptions {
		d.log.Info("Unsubscribing", zap.String("account_id", sub.AccountID))
		d.reach(sub.AccountID)
		if err := d.api.Unsubscribe(ctx, sub.ID); err != nil {
			return err
		}
	}
	return nil
}

// closeSessions terminates every device session except the invoking one,
// which the remote service lists first. Runs last: closing sessions earlier
// could cut the run off at the knees.
func (d *Driver) closeSessions(ctx context.Context) error {
	sessions, err := d.api.Sessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) <= 1 {
		return nil
	}
	for _, session := range sessions[1:] {
		if err := d.api.CloseSession(ctx, session.ID); err != nil {
			return err
		}
	}
	d.log.Info("Closed other sessions", zap.Int("count", len(sessions)-1))
	return nil
}
