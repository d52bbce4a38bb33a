package vault_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Antles/FinalCS340/internal/core/vault"
	"github.com/Antles/FinalCS340/internal/mocks"
)

func TestResolveSecret(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		secret    string
		secretErr error
		want      string
		wantErr   bool
	}{
		{
			name:   "found",
			uri:    "dotenv://MONGODB_PASSWORD",
			secret: "s3cret",
			want:   "s3cret",
		},
		{
			name:      "not found resolves empty",
			uri:       "dotenv://MONGODB_PASSWORD",
			secretErr: fmt.Errorf("%w: MONGODB_PASSWORD", vault.ErrSecretNotFound),
			want:      "",
		},
		{
			name:      "vault failure",
			uri:       "dotenv://MONGODB_PASSWORD",
			secretErr: assert.AnError,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mocks.MockVaultClient{}
			client.On("GetSecret", mock.Anything, tt.uri).Return(tt.secret, tt.secretErr)

			got, err := vault.ResolveSecret(context.Background(), client, tt.uri)

			if tt.wantErr {
				assert.ErrorIs(t, err, assert.AnError)
				assert.Empty(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestResolveSecret_EmptyURI(t *testing.T) {
	client := &mocks.MockVaultClient{}

	got, err := vault.ResolveSecret(context.Background(), client, "")

	assert.NoError(t, err)
	assert.Empty(t, got)
	client.AssertNotCalled(t, "GetSecret", mock.Anything, mock.Anything)
}
