package address

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mwantia/cmdargs/pkg/errors"
	"github.com/mwantia/cmdargs/store"
	"github.com/mwantia/cmdargs/store/consul"
	"github.com/mwantia/cmdargs/store/local"
	"github.com/mwantia/cmdargs/store/memory"
	"github.com/mwantia/cmdargs/store/postgres"
	"github.com/mwantia/cmdargs/store/s3"
	"github.com/mwantia/cmdargs/store/sqlite"
)

// Parse creates the store addressed by a scheme prefixed address.
// Any address accepts a 'readonly=true' query parameter.
//
//	memory://
//	file://<dir>
//	sqlite://<path>|:memory:
//	postgres://<user>:<pass>@<host>:<port>/<db>?<sslmode>
//	consul://<host>:<port>/<prefix>?<token>&<datacenter>&<namespace>
//	s3://<access_key>:<secret_key>@<host>:<port>/<bucket>?<ssl>
func Parse(address string) (store.Store, error) {
	address = strings.TrimSpace(address)
	scheme, rest, ok := strings.Cut(address, "://")
	if !ok || scheme == "" {
		return nil, fmt.Errorf("failed to parse address '%s': %w", address, errors.ErrMalformedStoreAddress)
	}

	rest, rawQuery, _ := strings.Cut(rest, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to parse address '%s': %w: %w", address, errors.ErrMalformedStoreAddress, err)
	}

	readonly, err := parseBool(query, "readonly")
	if err != nil {
		return nil, fmt.Errorf("failed to parse address '%s': %w", address, err)
	}
	query.Del("readonly")

	var s store.Store
	switch strings.ToLower(scheme) {
	case "memory":
		s = memory.NewMemoryStore()
	case "file", "local":
		s, err = parseLocalAddress(rest)
	case "sqlite":
		s, err = parseSqliteAddress(rest)
	case "postgres", "postgresql", "psql":
		s, err = parsePostgresAddress(rest, query)
	case "consul":
		s, err = parseConsulAddress(rest, query)
	case "s3", "minio":
		s, err = parseS3Address(rest, query)
	default:
		return nil, fmt.Errorf("failed to parse address '%s': %w", address, errors.ErrUnknownStoreScheme)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse address '%s': %w", address, err)
	}

	if readonly {
		return store.NewReadOnly(s), nil
	}
	return s, nil
}

func parseLocalAddress(rest string) (store.Store, error) {
	if rest == "" {
		return nil, fmt.Errorf("directory cannot be empty: %w", errors.ErrMalformedStoreAddress)
	}
	return local.NewLocalStore(filepath.FromSlash(rest)), nil
}

func parseSqliteAddress(rest string) (store.Store, error) {
	if rest == "" {
		return nil, fmt.Errorf("database path cannot be empty: %w", errors.ErrMalformedStoreAddress)
	}
	return sqlite.NewSQLiteStore(rest)
}

func parsePostgresAddress(rest string, query url.Values) (store.Store, error) {
	connString := "postgres://" + rest
	if len(query) > 0 {
		connString += "?" + query.Encode()
	}
	return postgres.NewPostgresStore(connString)
}

func parseConsulAddress(rest string, query url.Values) (store.Store, error) {
	host, prefix, _ := strings.Cut(rest, "/")
	return consul.NewConsulStore(&consul.ConsulStoreConfig{
		Address:    host,
		Token:      query.Get("token"),
		Datacenter: query.Get("datacenter"),
		Namespace:  query.Get("namespace"),
		Prefix:     prefix,
	})
}

func parseS3Address(rest string, query url.Values) (store.Store, error) {
	u, err := url.Parse("s3://" + rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMalformedStoreAddress, err)
	}

	bucket := strings.Trim(u.Path, "/")
	if u.Host == "" || bucket == "" || strings.Contains(bucket, "/") {
		return nil, fmt.Errorf("expected <host>/<bucket>: %w", errors.ErrMalformedStoreAddress)
	}

	accessKey := query.Get("access_key")
	secretKey := query.Get("secret_key")
	if u.User != nil {
		accessKey = u.User.Username()
		secretKey, _ = u.User.Password()
	}

	useSsl, err := parseBool(query, "ssl")
	if err != nil {
		return nil, err
	}

	return s3.NewS3Store(u.Host, bucket, accessKey, secretKey, useSsl)
}

func parseBool(query url.Values, name string) (bool, error) {
	raw := query.Get(name)
	if raw == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid value '%s' for '%s': %w", raw, name, errors.ErrMalformedStoreAddress)
	}
	return value, nil
}
