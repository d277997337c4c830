package crypto

import (
	"context"
	"encoding/base64"

	gcpkms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"

	"github.com/GregMSThompson/steps-backend/internal/errs"
)

type Sealer interface {
	Seal(ctx context.Context, plaintext string) (string, error)
	Open(ctx context.Context, sealed string) (string, error)
}

// New returns the KMS sealer, or a passthrough when no client is configured.
func New(client *gcpkms.KeyManagementClient, keyName string) Sealer {
	if client == nil || keyName == "" {
		return NewPlain()
	}
	return NewKMS(client, keyName)
}

// kms seals Google access tokens before they are written to the session
// store so a leaked Redis snapshot does not expose usable credentials.
type kms struct {
	client  *gcpkms.KeyManagementClient
	keyName string
}

func NewKMS(client *gcpkms.KeyManagementClient, keyName string) *kms {
	return &kms{client: client, keyName: keyName}
}

// Seal encrypts plaintext with the configured key and returns base64 text.
func (k *kms) Seal(ctx context.Context, plaintext string) (string, error) {
	resp, err := k.client.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:      k.keyName,
		Plaintext: []byte(plaintext),
	})
	if err != nil {
		return "", errs.NewEncryptionError("failed to seal access token", err)
	}
	return base64.StdEncoding.EncodeToString(resp.Ciphertext), nil
}

// Open reverses Seal.
func (k *kms) Open(ctx context.Context, sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errs.NewEncryptionError("sealed access token is not base64", err)
	}
	resp, err := k.client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:       k.keyName,
		Ciphertext: raw,
	})
	if err != nil {
		return "", errs.NewEncryptionError("failed to open access token", err)
	}
	return string(resp.Plaintext), nil
}

// plain is used when no KMS key is configured.
type plain struct{}

func NewPlain() plain { return plain{} }

func (plain) Seal(_ context.Context, plaintext string) (string, error) { return plaintext, nil }
func (plain) Open(_ context.Context, sealed string) (string, error)    { return sealed, nil }
