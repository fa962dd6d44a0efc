package consul

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"

	cmderrors "github.com/mwantia/cmdargs/pkg/errors"
	"github.com/mwantia/cmdargs/store"
)

// ConsulStore keeps each document as a single Consul KV entry below Prefix.
// The revision is the entry's ModifyIndex. Consul records no timestamps,
// so documents read back carry a zero ModifyTime.
//
// Consul KV has a 512KB limit per value.
type ConsulStore struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	config *ConsulStoreConfig
}

// ConsulStoreConfig contains configuration options for the Consul store
type ConsulStoreConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Namespace for Consul Enterprise (optional)
	Namespace string

	// Prefix for all keys in Consul KV (default: "cmdargs/")
	Prefix string
}

func NewConsulStore(config *ConsulStoreConfig) (*ConsulStore, error) {
	if config == nil {
		config = &ConsulStoreConfig{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	config.Prefix = strings.Trim(config.Prefix, "/")
	if config.Prefix == "" {
		config.Prefix = "cmdargs"
	}
	config.Prefix += "/"

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulStore{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

func (*ConsulStore) Name() string {
	return "consul"
}

func (cs *ConsulStore) Open(_ context.Context) error {
	if _, err := cs.client.Status().Leader(); err != nil {
		return fmt.Errorf("failed to reach consul at %s: %w: %w", cs.config.Address, cmderrors.ErrStoreUnavailable, err)
	}
	return nil
}

// Close is a no-op, the Consul client is stateless.
func (*ConsulStore) Close(_ context.Context) error {
	return nil
}

func (cs *ConsulStore) Get(ctx context.Context, key string) (*store.Document, error) {
	key, err := store.CleanKey(key)
	if err != nil {
		return nil, err
	}

	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return cs.get(ctx, key)
}

func (cs *ConsulStore) Put(ctx context.Context, key string, content []byte) (*store.Document, error) {
	key, err := store.CleanKey(key)
	if err != nil {
		return nil, err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	pair := &api.KVPair{
		Key:   cs.buildKey(key),
		Value: content,
	}
	if _, err := cs.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx)); err != nil {
		return nil, err
	}

	// The ModifyIndex is only known after reading the entry back.
	return cs.get(ctx, key)
}

func (cs *ConsulStore) Delete(ctx context.Context, key string) error {
	key, err := store.CleanKey(key)
	if err != nil {
		return err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, err := cs.get(ctx, key); err != nil {
		return err
	}

	_, err = cs.kv.Delete(cs.buildKey(key), (&api.WriteOptions{}).WithContext(ctx))
	return err
}

func (cs *ConsulStore) List(ctx context.Context) ([]string, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	consulKeys, _, err := cs.kv.Keys(cs.config.Prefix, "", (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(consulKeys))
	for _, consulKey := range consulKeys {
		if key, err := store.CleanKey(strings.TrimPrefix(consulKey, cs.config.Prefix)); err == nil && !strings.HasSuffix(consulKey, "/") {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)
	return keys, nil
}

func (cs *ConsulStore) get(ctx context.Context, key string) (*store.Document, error) {
	pair, _, err := cs.kv.Get(cs.buildKey(key), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, store.NotFound(key)
	}

	return &store.Document{
		Key:      key,
		Revision: strconv.FormatUint(pair.ModifyIndex, 10),
		Size:     int64(len(pair.Value)),
		Content:  pair.Value,
	}, nil
}

func (cs *ConsulStore) buildKey(key string) string {
	return cs.config.Prefix + key
}
