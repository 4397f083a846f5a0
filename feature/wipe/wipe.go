package wipe

import (
	"context"

	"fansly-utils/core/api"
	"fansly-utils/core/checkpoint"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// API is the remote surface the destructive driver consumes.
type API interface {
	SelfID(ctx context.Context) (string, error)

	Payments(ctx context.Context, limit, offset int) ([]api.Payment, error)

	Lists(ctx context.Context) ([]api.ListInfo, error)
	ListItems(ctx context.Context, listID string) ([]string, error)
	RemoveListItems(ctx context.Context, listID string, accountIDs []string) error
	DeleteList(ctx context.Context, listID string) error

	Albums(ctx context.Context) ([]api.Album, error)
	AlbumContent(ctx context.Context, albumID string, limit, offset int) ([]api.AlbumItem, error)
	DeleteAlbumContent(ctx context.Context, albumID string, itemIDs []string) error

	TimelineBefore(ctx context.Context, accountID, before string, limit int) ([]api.Post, error)
	DeletePost(ctx context.Context, postID string) error

	Groups(ctx context.Context, limit, offset int) ([]api.Group, error)
	Messages(ctx context.Context, groupID, before string, limit int) ([]api.Message, error)
	DeleteMessage(ctx context.Context, messageID string) error

	Following(ctx context.Context, limit, offset int) ([]string, error)
	Unfollow(ctx context.Context, accountID string) error

	AccountsByIDs(ctx context.Context, ids []string) ([]api.Account, error)
	DeleteNote(ctx context.Context, accountID, noteID string) error

	Subscriptions(ctx context.Context) ([]api.Subscription, error)
	Unsubscribe(ctx context.Context, subscriptionID string) error

	Sessions(ctx context.Context) ([]api.Session, error)
	CloseSession(ctx context.Context, sessionID string) error
}

// stage is one irreversible step of the wipe sequence.
type stage struct {
	name string
	run  func(*Driver, context.Context) error
}

// stages run in a fixed order. The id-discovering stages come first so the
// notes stage sees the full reachable set; subscriptions and sessions run
// last because either could cut off the access the earlier stages need.
func stages() []stage {
	return []stage{
		{"payments-inspect", (*Driver).inspectPayments},
		{"lists-wipe", (*Driver).wipeLists},
		{"collections-wipe", (*Driver).wipeCollections},
		{"comments-wipe", (*Driver).wipeComments},
		{"messages-wipe", (*Driver).wipeMessages},
		{"unfollow", (*Driver).unfollowAll},
		{"notes-wipe", (*Driver).wipeNotes},
		{"subscriptions-wipe", (*Driver).wipeSubscriptions},
		{"sessions-wipe", (*Driver).closeSessions},
	}
}

// Driver orchestrates the ordered sequence of destructive stages with a
// resumable checkpoint of every account id discovered so far.
type Driver struct {
	api  API
	ckpt *checkpoint.File
	log  *zap.Logger

	// reachable accumulates the account ids discovered by the stages. It is
	// seeded from the checkpoint so an interrupted run resumes instead of
	// restarting from empty.
	reachable map[string]struct{}
}

// NewDriver creates a wipe driver over the given checkpoint file.
func NewDriver(remote API, ckpt *checkpoint.File, log *zap.Logger) *Driver {
	return &Driver{
		api:  remote,
		ckpt: ckpt,
		log:  log,
	}
}

// Run executes every stage in order. The reachable-id set is persisted to
// the checkpoint after each stage and once more on the way out, whatever the
// exit path, so no discovered id is ever lost to a crash.
func (d *Driver) Run(ctx context.Context) (err error) {
	reachable, err := d.ckpt.Load()
	if err != nil {
		return err
	}
	d.reachable = reachable
	d.log = d.log.With(zap.String("run_id", uuid.NewString()))

	if len(d.reachable) > 0 {
		d.log.Info("Resuming from checkpoint",
			zap.String("file", d.ckpt.Path()),
			zap.Int("known_ids", len(d.reachable)),
		)
	}

	defer func() {
		if persistErr := d.ckpt.Persist(d.reachable); persistErr != nil {
			d.log.Error("Failed to persist checkpoint on exit", zap.Error(persistErr))
			if err == nil {
				err = persistErr
			}
		}
	}()

	for _, st := range stages() {
		d.log.Info("Running wipe stage", zap.String("stage", st.name))
		if err := st.run(d, ctx); err != nil {
			return err
		}
		if err := d.ckpt.Persist(d.reachable); err != nil {
			return err
		}
	}

	d.log.Info("Wipe complete", zap.Int("accounts_touched", len(d.reachable)))
	return nil
}

// reach records discovered account ids.
func (d *Driver) reach(ids ...string) {
	for _, id := range ids {
		if id != "" {
			d.reachable[id] = struct{}{}
		}
	}
}
