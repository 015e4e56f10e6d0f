// Package natskv implements persistence.Adapter over a NATS JetStream
// key-value bucket, grounded on the teacher's flowstore.Store plus its
// natsclient.CreateKeyValueBucket/KVStore helpers: one bucket, one key
// per person id, JSON-encoded values, and a Keys()-then-Get() sweep for
// LoadAll the way flowstore.List enumerates flows.
package natskv

import (
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	famerrors "github.com/chris-hammersley/family-chart/errors"
	"github.com/chris-hammersley/family-chart/person"
	"github.com/chris-hammersley/family-chart/persistence"
)

// Adapter persists persons as individual JSON values in a JetStream KV
// bucket, one key per person id.
type Adapter struct {
	bucket jetstream.KeyValue
}

// Config configures Connect.
type Config struct {
	URLs     []string
	Bucket   string
	Username string
	Password string
}

// Connect dials NATS, ensures the configured KV bucket exists, and
// returns an Adapter over it.
func Connect(ctx context.Context, cfg Config) (*Adapter, error) {
	if cfg.Bucket == "" {
		return nil, famerrors.WrapInvariant(famerrors.ErrPersonNotFound, "natskv", "Connect", "bucket name is required")
	}

	var opts []nats.Option
	if cfg.Username != "" {
		opts = append(opts, nats.UserInfo(cfg.Username, cfg.Password))
	}

	nc, err := nats.Connect(strings.Join(cfg.URLs, ","), opts...)
	if err != nil {
		return nil, famerrors.Wrap(err, "natskv", "Connect", "dial nats")
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, famerrors.Wrap(err, "natskv", "Connect", "create jetstream context")
	}

	bucket, err := ensureBucket(ctx, js, cfg.Bucket)
	if err != nil {
		return nil, err
	}

	return &Adapter{bucket: bucket}, nil
}

// ensureBucket gets the named bucket, creating it on first run. Mirrors
// the teacher's get-then-create-on-miss ordering, including tolerating
// a racing creator.
func ensureBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	bucket, err := js.KeyValue(ctx, name)
	if err == nil {
		return bucket, nil
	}

	bucket, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "Family tree person records",
		History:     10,
	})
	if err != nil {
		if isAlreadyExistsError(err) {
			bucket, err = js.KeyValue(ctx, name)
			if err != nil {
				return nil, famerrors.Wrap(err, "natskv", "ensureBucket", fmt.Sprintf("access existing bucket %s", name))
			}
			return bucket, nil
		}
		return nil, famerrors.Wrap(err, "natskv", "ensureBucket", fmt.Sprintf("create bucket %s", name))
	}
	return bucket, nil
}

// NewFromBucket wraps an already-open bucket, for tests against a real
// or in-process JetStream server without going through Connect's URL
// dialing.
func NewFromBucket(bucket jetstream.KeyValue) *Adapter {
	return &Adapter{bucket: bucket}
}

// SavePerson implements persistence.Adapter. It always writes with Put
// (last-writer-wins), with no compare-and-swap or retry: when two saves
// of the same person overlap, whichever Put lands last is kept.
func (a *Adapter) SavePerson(ctx context.Context, p *person.Person) error {
	data, err := persistence.MarshalPerson(p)
	if err != nil {
		return err
	}
	if _, err := a.bucket.Put(ctx, keyFor(p.ID), data); err != nil {
		return famerrors.Wrap(err, "natskv", "SavePerson", "put person "+p.ID)
	}
	return nil
}

// DeletePerson implements persistence.Adapter. Deleting a key that was
// never created is not an error, matching the interface contract.
func (a *Adapter) DeletePerson(ctx context.Context, id string) error {
	if err := a.bucket.Delete(ctx, keyFor(id)); err != nil {
		if isNotFoundError(err) {
			return nil
		}
		return famerrors.Wrap(err, "natskv", "DeletePerson", "delete person "+id)
	}
	return nil
}

// LoadAll implements persistence.Adapter.
func (a *Adapter) LoadAll(ctx context.Context) ([]*person.Person, error) {
	keys, err := a.bucket.Keys(ctx)
	if err != nil {
		if isNoKeysError(err) {
			return nil, nil
		}
		return nil, famerrors.Wrap(err, "natskv", "LoadAll", "list keys")
	}

	people := make([]*person.Person, 0, len(keys))
	for _, key := range keys {
		entry, err := a.bucket.Get(ctx, key)
		if err != nil {
			return nil, famerrors.Wrap(err, "natskv", "LoadAll", "get "+key)
		}
		p, err := persistence.UnmarshalPerson(entry.Value())
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, nil
}

// keyFor namespaces person ids under a "person." prefix so a future
// bucket sharing other document kinds doesn't collide with them.
func keyFor(id string) string {
	return "person." + id
}

// isAlreadyExistsError and isNotFoundError inspect the raw NATS error
// text the way the teacher's IsKVConflictError/IsKVNotFoundError do,
// since jetstream's KV errors aren't always wrapped in a sentinel the
// client can errors.Is against.
func isAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "already in use") || strings.Contains(msg, "stream name already in use")
}

func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return err == jetstream.ErrKeyNotFound || strings.Contains(err.Error(), "key not found")
}

// isNoKeysError reports whether err from bucket.Keys means "bucket is
// empty" rather than a real failure.
func isNoKeysError(err error) bool {
	return err == jetstream.ErrNoKeysFound
}
