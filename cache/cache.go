package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

const keyPrefix = "property:"

// PropertyCache stores rendered property list responses.
//
// Get reports the generation it looked the key up under. Set must be given
// that generation and drops the value when an Invalidate happened since, so
// a response built from rows read before a mutation is never stored after it.
type PropertyCache interface {
	Get(ctx context.Context, key string) (value []byte, gen int64, ok bool)
	Set(ctx context.Context, key string, gen int64, value []byte)
	Invalidate(ctx context.Context)
}

// Key hashes the scope and the sorted query so that parameter order does
// not produce distinct entries.
func Key(scope string, query url.Values) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(scope)
	sb.WriteString(":")

	for _, key := range keys {
		values := append([]string(nil), query[key]...)
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Noop is used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, int64, bool) { return nil, 0, false }
func (Noop) Set(context.Context, string, int64, []byte)        {}
func (Noop) Invalidate(context.Context)                        {}
