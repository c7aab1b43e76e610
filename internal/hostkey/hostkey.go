// Package hostkey loads the PEM-encoded SSH host key for the server, either
// from a local file or from Google Secret Manager.
package hostkey

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/charmbracelet/keygen"
)

// ErrNoSecret is returned when no secret version name was configured.
var ErrNoSecret = errors.New("hostkey: no secret name")

// Local returns the ed25519 key stored at path, generating and writing one
// first if the file does not exist.
func Local(path string) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating key directory: %w", err)
	}
	kp, err := keygen.New(path, keygen.WithKeyType(keygen.Ed25519), keygen.WithWrite())
	if err != nil {
		return nil, fmt.Errorf("loading host key %s: %w", path, err)
	}
	return kp.RawPrivateKey(), nil
}

// DefaultPath is where Local keeps the key when none is configured.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".chessh", "host_key"), nil
}

// FromSecretManager reads the key from a secret version, named like
// projects/*/secrets/*/versions/*.
func FromSecretManager(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, ErrNoSecret
	}
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating Secret Manager client: %w", err)
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("accessing secret version: %w", err)
	}
	return resp.GetPayload().GetData(), nil
}
