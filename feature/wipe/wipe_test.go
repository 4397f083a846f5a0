package wipe

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"fansly-utils/core/api"
	"fansly-utils/core/checkpoint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAPI serves canned remote state and records every destructive call.
type fakeAPI struct {
	selfID string

	payments      []api.Payment
	lists         []api.ListInfo
	listItems     map[string][]string
	albums        []api.Album
	albumContent  map[string][]api.AlbumItem
	posts         []api.Post
	groups        []api.Group
	messages      map[string][]api.Message
	deadGroups    map[string]bool
	following     []string
	accounts      map[string]api.Account
	subscriptions []api.Subscription
	sessions      []api.Session

	removedListItems map[string][]string
	deletedLists     []string
	clearedAlbums    map[string][]string
	deletedPosts     []string
	deletedMessages  []string
	unfollowed       []string
	deletedNotes     map[string][]string
	unsubscribed     []string
	closedSessions   []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		selfID:           "self",
		listItems:        map[string][]string{},
		albumContent:     map[string][]api.AlbumItem{},
		messages:         map[string][]api.Message{},
		deadGroups:       map[string]bool{},
		accounts:         map[string]api.Account{},
		removedListItems: map[string][]string{},
		clearedAlbums:    map[string][]string{},
		deletedNotes:     map[string][]string{},
	}
}

func (f *fakeAPI) SelfID(ctx context.Context) (string, error) { return f.selfID, nil }

func (f *fakeAPI) Payments(ctx context.Context, limit, offset int) ([]api.Payment, error) {
	if offset >= len(f.payments) {
		return nil, nil
	}
	return f.payments, nil
}

func (f *fakeAPI) Lists(ctx context.Context) ([]api.ListInfo, error) { return f.lists, nil }

func (f *fakeAPI) ListItems(ctx context.Context, listID string) ([]string, error) {
	return f.listItems[listID], nil
}

func (f *fakeAPI) RemoveListItems(ctx context.Context, listID string, accountIDs []string) error {
	f.removedListItems[listID] = append(f.removedListItems[listID], accountIDs...)
	return nil
}

func (f *fakeAPI) DeleteList(ctx context.Context, listID string) error {
	f.deletedLists = append(f.deletedLists, listID)
	return nil
}

func (f *fakeAPI) Albums(ctx context.Context) ([]api.Album, error) { return f.albums, nil }

func (f *fakeAPI) AlbumContent(ctx context.Context, albumID string, limit, offset int) ([]api.AlbumItem, error) {
	if offset >= len(f.albumContent[albumID]) {
		return nil, nil
	}
	return f.albumContent[albumID], nil
}

func (f *fakeAPI) DeleteAlbumContent(ctx context.Context, albumID string, itemIDs []string) error {
	f.clearedAlbums[albumID] = append(f.clearedAlbums[albumID], itemIDs...)
	return nil
}

func (f *fakeAPI) TimelineBefore(ctx context.Context, accountID, before string, limit int) ([]api.Post, error) {
	if before != "" {
		return nil, nil
	}
	return f.posts, nil
}

func (f *fakeAPI) DeletePost(ctx context.Context, postID string) error {
	if postID == "post-gone" {
		return api.ErrNotFound
	}
	f.deletedPosts = append(f.deletedPosts, postID)
	return nil
}

func (f *fakeAPI) Groups(ctx context.Context, limit, offset int) ([]api.Group, error) {
	if offset >= len(f.groups) {
		return nil, nil
	}
	return f.groups, nil
}

func (f *fakeAPI) Messages(ctx context.Context, groupID, before string, limit int) ([]api.Message, error) {
	if f.deadGroups[groupID] {
		return nil, &api.StatusError{Code: 500, Method: "GET", Path: "/messages"}
	}
	if before != "" {
		return nil, nil
	}
	return f.messages[groupID], nil
}

func (f *fakeAPI) DeleteMessage(ctx context.Context, messageID string) error {
	f.deletedMessages = append(f.deletedMessages, messageID)
	return nil
}

func (f *fakeAPI) Following(ctx context.Context, limit, offset int) ([]string, error) {
	if offset >= len(f.following) {
		return nil, nil
	}
	return f.following, nil
}

func (f *fakeAPI) Unfollow(ctx context.Context, accountID string) error {
	f.unfollowed = append(f.unfollowed, accountID)
	return nil
}

func (f *fakeAPI) AccountsByIDs(ctx context.Context, ids []string) ([]api.Account, error) {
	var out []api.Account
	for _, id := range ids {
		if account, ok := f.accounts[id]; ok {
			out = append(out, account)
		}
	}
	return out, nil
}

func (f *fakeAPI) DeleteNote(ctx context.Context, accountID, noteID string) error {
	f.deletedNotes[accountID] = append(f.deletedNotes[accountID], noteID)
	return nil
}

func (f *fakeAPI) Subscriptions(ctx context.Context) ([]api.Subscription, error) {
	return f.subscriptions, nil
}

func (f *fakeAPI) Unsubscribe(ctx context.Context, subscriptionID string) error {
	f.unsubscribed = append(f.unsubscribed, subscriptionID)
	return nil
}

func (f *fakeAPI) Sessions(ctx context.Context) ([]api.Session, error) { return f.sessions, nil }

func (f *fakeAPI) CloseSession(ctx context.Context, sessionID string) error {
	f.closedSessions = append(f.closedSessions, sessionID)
	return nil
}

func populatedFake() *fakeAPI {
	f := newFakeAPI()
	f.payments = []api.Payment{{TransactionID: "t1", AccountID: "paid-1"}}
	f.lists = []api.ListInfo{{ID: "l1", Label: "favorites"}}
	f.listItems["l1"] = []string{"listed-1", "listed-2"}
	f.albums = []api.Album{{ID: "al1", Title: "vault"}}
	f.albumContent["al1"] = []api.AlbumItem{{ID: "item-1", AccountID: "creator-1"}}
	f.posts = []api.Post{
		{ID: "post-own", AccountID: "self"},
		{ID: "post-other", AccountID: "other-1"},
	}
	f.groups = []api.Group{{ID: "g1", PartnerID: "partner-1"}}
	f.messages["g1"] = []api.Message{
		{ID: "m1", SenderID: "self"},
		{ID: "m2", SenderID: "partner-1"},
	}
	f.following = []string{"followed-1"}
	f.accounts["followed-1"] = api.Account{
		ID: "followed-1", Username: "noted",
		Notes: []api.Note{{ID: "n1", Title: "a note"}},
	}
	f.subscriptions = []api.Subscription{{ID: "sub-1", AccountID: "subbed-1"}}
	f.sessions = []api.Session{{ID: "current"}, {ID: "old-phone"}, {ID: "old-laptop"}}
	return f
}

func newTestDriver(t *testing.T, remote API) (*Driver, *checkpoint.File) {
	t.Helper()
	ckpt := checkpoint.New(filepath.Join(t.TempDir(), "wipe.checkpoint"))
	return NewDriver(remote, ckpt, zap.NewNop()), ckpt
}

func TestDriver_Run(t *testing.T) {
	f := populatedFake()
	d, ckpt := newTestDriver(t, f)

	require.NoError(t, d.Run(context.Background()))

	t.Run("Lists Are Emptied And Deleted", func(t *testing.T) {
		assert.Equal(t, []string{"listed-1", "listed-2"}, f.removedListItems["l1"])
		assert.Equal(t, []string{"l1"}, f.deletedLists)
	})

	t.Run("Collections Are Cleared", func(t *testing.T) {
		assert.Equal(t, []string{"item-1"}, f.clearedAlbums["al1"])
	})

	t.Run("Only Own Posts Are Deleted", func(t *testing.T) {
		assert.Equal(t, []string{"post-own"}, f.deletedPosts)
	})

	t.Run("Only Own Messages Are Deleted", func(t *testing.T) {
		assert.Equal(t, []string{"m1"}, f.deletedMessages)
	})

	t.Run("Everyone Is Unfollowed", func(t *testing.T) {
		assert.Equal(t, []string{"followed-1"}, f.unfollowed)
	})

	t.Run("Notes Of Reachable Accounts Are Deleted", func(t *testing.T) {
		assert.Equal(t, []string{"n1"}, f.deletedNotes["followed-1"])
	})

	t.Run("Subscriptions Are Cancelled", func(t *testing.T) {
		assert.Equal(t, []string{"sub-1"}, f.unsubscribed)
	})

	t.Run("Current Session Survives", func(t *testing.T) {
		assert.Equal(t, []string{"old-phone", "old-laptop"}, f.closedSessions)
	})

	t.Run("Checkpoint Holds Every Discovered Id", func(t *testing.T) {
		ids, err := ckpt.Load()
		require.NoError(t, err)
		for _, id := range []string{
			"paid-1", "listed-1", "listed-2", "creator-1",
			"other-1", "partner-1", "followed-1", "subbed-1",
		} {
			assert.Contains(t, ids, id)
		}
		assert.NotContains(t, ids, "self")
	})
}

func TestDriver_DeadConversationIsSkipped(t *testing.T) {
	f := populatedFake()
	f.groups = append(f.groups, api.Group{ID: "g-dead", PartnerID: "partner-2"})
	f.deadGroups["g-dead"] = true
	d, _ := newTestDriver(t, f)

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, []string{"m1"}, f.deletedMessages)
}

func TestDriver_AlreadyDeletedPostIsSkipped(t *testing.T) {
	f := populatedFake()
	f.posts = append([]api.Post{{ID: "post-gone", AccountID: "self"}}, f.posts...)
	d, _ := newTestDriver(t, f)

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, []string{"post-own"}, f.deletedPosts)
}

// failingAPI wraps the fake and fails every Groups call, cutting the run
// short after the stages before messages have checkpointed.
type failingAPI struct {
	*fakeAPI
}

func (f *failingAPI) Groups(ctx context.Context, limit, offset int) ([]api.Group, error) {
	return nil, fmt.Errorf("connection reset")
}

func TestDriver_ResumesFromCheckpoint(t *testing.T) {
	f := populatedFake()
	ckpt := checkpoint.New(filepath.Join(t.TempDir(), "wipe.checkpoint"))

	// First run dies in the messages stage.
	d := NewDriver(&failingAPI{f}, ckpt, zap.NewNop())
	require.Error(t, d.Run(context.Background()))

	// Ids discovered before the failure made it to disk.
	ids, err := ckpt.Load()
	require.NoError(t, err)
	assert.Contains(t, ids, "paid-1")
	assert.Contains(t, ids, "listed-1")
	assert.Contains(t, ids, "creator-1")

	// Make the earlier stages return nothing, as they would after a real
	// partial wipe, and finish the run.
	f.payments = nil
	f.lists = nil
	f.albums = nil
	f.posts = nil

	d = NewDriver(f, ckpt, zap.NewNop())
	require.NoError(t, d.Run(context.Background()))

	// The notes stage still saw the ids discovered by the first run.
	final, err := ckpt.Load()
	require.NoError(t, err)
	assert.Contains(t, final, "paid-1")
	assert.Contains(t, final, "listed-1")
}

// interruptedAPI cancels the run context on the first Unfollow call, the way
// a user interrupt arriving mid-stage does.
type interruptedAPI struct {
	*fakeAPI
	cancel context.CancelFunc
}

func (i *interruptedAPI) Unfollow(ctx context.Context, accountID string) error {
	i.cancel()
	return ctx.Err()
}

func TestDriver_CancelledRunPersistsCheckpoint(t *testing.T) {
	f := populatedFake()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ckpt := checkpoint.New(filepath.Join(t.TempDir(), "wipe.checkpoint"))

	d := NewDriver(&interruptedAPI{fakeAPI: f, cancel: cancel}, ckpt, zap.NewNop())
	require.ErrorIs(t, d.Run(ctx), context.Canceled)

	// The follow graph was collected before the cancellation hit, so those
	// ids must be on disk even though the stage never completed.
	ids, err := ckpt.Load()
	require.NoError(t, err)
	assert.Contains(t, ids, "followed-1")
	assert.Contains(t, ids, "paid-1")
	assert.Contains(t, ids, "partner-1")
}

func TestStagesOrder(t *testing.T) {
	var names []string
	for _, st := range stages() {
		names = append(names, st.name)
	}
	assert.Equal(t, []string{
		"payments-inspect",
		"lists-wipe",
		"collections-wipe",
		"comments-wipe",
		"messages-wipe",
		"unfollow",
		"notes-wipe",
		"subscriptions-wipe",
		"sessions-wipe",
	}, names)
}
