package host_test

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/revora-network/revshare-contract/host"
	"github.com/stretchr/testify/require"
)

func TestSignatureWitness(t *testing.T) {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	account := priv.GetScriptHash().BytesBE()

	payload := []byte("register_offering|issuer|token|1500")
	w := host.NewSignatureWitness(payload)
	w.AddSignature(priv.PublicKey(), priv.Sign(payload))

	require.True(t, w.CheckWitness(account))

	t.Run("unknown account", func(t *testing.T) {
		other, err := keys.NewPrivateKey()
		require.NoError(t, err)
		require.False(t, w.CheckWitness(other.GetScriptHash().BytesBE()))
	})

	t.Run("signature over different payload", func(t *testing.T) {
		tampered := host.NewSignatureWitness([]byte("register_offering|issuer|token|9999"))
		tampered.AddSignature(priv.PublicKey(), priv.Sign(payload))
		require.False(t, tampered.CheckWitness(account))
	})

	t.Run("no signatures", func(t *testing.T) {
		empty := host.NewSignatureWitness(payload)
		require.False(t, empty.CheckWitness(account))
	})

	t.Run("foreign key claiming the account", func(t *testing.T) {
		forger, err := keys.NewPrivateKey()
		require.NoError(t, err)
		w := host.NewSignatureWitness(payload)
		w.AddSignature(forger.PublicKey(), forger.Sign(payload))
		require.False(t, w.CheckWitness(account))
	})
}
