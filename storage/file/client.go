package file

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/hkdf"

	"github.com/R-Theory/core-engine-client/internal/errors"
)

const fileMode = 0o600

// Client persists each key as a file under a data folder. When constructed
// with a key, values are sealed with AES-GCM before hitting disk.
type Client struct {
	mu     sync.Mutex
	folder string
	aead   cipher.AEAD
}

type Option func(*Client) error

// WithEncryptionKeyHex enables at-rest encryption. The key is hex encoded,
// 64 chars -> 32 bytes; the AES key is derived from it with HKDF-SHA256.
func WithEncryptionKeyHex(hexKey string) Option {
	return func(c *Client) error {
		master, err := hex.DecodeString(hexKey)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidKey, "hex decode")
		}
		if len(master) != 32 {
			return errors.Wrapf(errors.ErrInvalidKey, "key length must be 32 bytes (hex 64 chars)")
		}
		derived := make([]byte, 32)
		kdf := hkdf.New(sha256.New, master, nil, []byte("core-engine-client state"))
		if _, err := io.ReadFull(kdf, derived); err != nil {
			return fmt.Errorf("[WithEncryptionKeyHex] hkdf: %w", err)
		}
		block, err := aes.NewCipher(derived)
		if err != nil {
			return fmt.Errorf("[WithEncryptionKeyHex] aes: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return fmt.Errorf("[WithEncryptionKeyHex] gcm: %w", err)
		}
		c.aead = aead
		return nil
	}
}

func New(folder string, options ...Option) (*Client, error) {
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, fmt.Errorf("[file.New] create data folder: %w", err)
	}
	c := &Client{folder: folder}
	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Client) Close() error { return nil }

func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := value
	if c.aead != nil {
		sealed, err := c.seal(value)
		if err != nil {
			return err
		}
		data = sealed
	}

	// Write through a temp file so readers never observe a partial entry
	path := c.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return fmt.Errorf("[file.Set] write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("[file.Set] rename %s: %w", key, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path(key))
	if os.IsNotExist(err) {
		return nil, errors.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("[file.Get] read %s: %w", key, err)
	}
	if c.aead != nil {
		return c.open(data)
	}
	return data, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("[file.Delete] remove %s: %w", key, err)
	}
	return nil
}

func (c *Client) path(key string) string {
	return filepath.Join(c.folder, key+".state")
}

func (c *Client) seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("[file.seal] nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plain, nil), nil
}

func (c *Client) open(sealed []byte) ([]byte, error) {
	ns := c.aead.NonceSize()
	if len(sealed) < ns {
		return nil, errors.Wrapf(errors.ErrInvalidKey, "sealed entry too short")
	}
	plain, err := c.aead.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return nil, fmt.Errorf("[file.open] decrypt: %w", err)
	}
	return plain, nil
}
