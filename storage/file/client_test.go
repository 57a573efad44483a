package file_test

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/R-Theory/core-engine-client/internal/errors"
	"github.com/R-Theory/core-engine-client/storage/file"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestSetGetDeleteRoundTrip(t *testing.T) {
	c, err := file.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Get(ctx, "auth-storage")
	require.ErrorIs(t, err, errors.ErrKeyNotFound)

	require.NoError(t, c.Set(ctx, "auth-storage", []byte(`{"is_authenticated":false}`)))

	got, err := c.Get(ctx, "auth-storage")
	require.NoError(t, err)
	require.JSONEq(t, `{"is_authenticated":false}`, string(got))

	require.NoError(t, c.Delete(ctx, "auth-storage"))
	_, err = c.Get(ctx, "auth-storage")
	require.ErrorIs(t, err, errors.ErrKeyNotFound)

	// Deleting a missing key is not an error
	require.NoError(t, c.Delete(ctx, "auth-storage"))
}

func TestSetOverwritesPreviousValue(t *testing.T) {
	c, err := file.New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("one")))
	require.NoError(t, c.Set(ctx, "k", []byte("two")))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "two", string(got))
}

func TestEncryptedRoundTrip(t *testing.T) {
	folder := t.TempDir()
	c, err := file.New(folder, file.WithEncryptionKeyHex(testKeyHex))
	require.NoError(t, err)
	ctx := context.Background()

	plain := []byte(`{"access_token":"tok1"}`)
	require.NoError(t, c.Set(ctx, "auth-storage", plain))

	// The on-disk entry must not contain the plaintext token
	raw, err := os.ReadFile(filepath.Join(folder, "auth-storage.state"))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "tok1")

	got, err := c.Get(ctx, "auth-storage")
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestEncryptedEntryUnreadableWithWrongKey(t *testing.T) {
	folder := t.TempDir()
	ctx := context.Background()

	c1, err := file.New(folder, file.WithEncryptionKeyHex(testKeyHex))
	require.NoError(t, err)
	require.NoError(t, c1.Set(ctx, "k", []byte("secret")))

	otherKey := hex.EncodeToString(make([]byte, 32))[:62] + "ff"
	c2, err := file.New(folder, file.WithEncryptionKeyHex(otherKey))
	require.NoError(t, err)

	_, err = c2.Get(ctx, "k")
	require.Error(t, err)
}

func TestInvalidEncryptionKey(t *testing.T) {
	_, err := file.New(t.TempDir(), file.WithEncryptionKeyHex("not hex"))
	require.ErrorIs(t, err, errors.ErrInvalidKey)

	_, err = file.New(t.TempDir(), file.WithEncryptionKeyHex("abcd"))
	require.ErrorIs(t, err, errors.ErrInvalidKey)
}
