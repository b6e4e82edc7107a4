package secrets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, StoreProviderKey("OpenAI", "sk-test-123"))

	// lookup is case-insensitive on the provider name
	got, err := FetchProviderKey("openai")
	require.NoError(t, err)
	require.Equal(t, "sk-test-123", got)

	require.NoError(t, StoreProviderKey("openai", "sk-rotated"))
	got, err = FetchProviderKey("openai")
	require.NoError(t, err)
	require.Equal(t, "sk-rotated", got)

	require.NoError(t, DeleteProviderKey("openai"))
	_, err = FetchProviderKey("openai")
	require.Error(t, err)
}

func TestFetchMissingProvider(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := FetchProviderKey("anthropic")
	require.Error(t, err)

	_, err = FetchProviderKey("  ")
	require.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	t.Parallel()

	ct, err := encrypt([]byte("hello"))
	require.NoError(t, err)
	require.NotEqual(t, []byte("hello"), ct)

	pt, err := decrypt(ct)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), pt)

	_, err = decrypt([]byte("short"))
	require.Error(t, err)
}
