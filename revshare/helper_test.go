package revshare_test

import (
	"math/rand"
	"testing"

	"github.com/revora-network/revshare-contract/common"
	"github.com/revora-network/revshare-contract/host"
	"github.com/revora-network/revshare-contract/revshare"
	"github.com/stretchr/testify/require"
)

// testHost runs the contract against in-memory facades.
type testHost struct {
	rt  *host.Runtime
	log *host.MemLog
}

func newTestHost(t *testing.T) *testHost {
	t.Helper()
	log := host.NewMemLog()
	return &testHost{
		rt:  host.NewRuntime(host.NewMemStorage(), log, nil),
		log: log,
	}
}

// invokeAs runs fn as an invocation approved by signer and requires it
// to succeed.
func (h *testHost) invokeAs(t *testing.T, signer common.AccountID, fn func(e *host.Env)) {
	t.Helper()
	require.NoError(t, h.rt.Invoke(host.Witnessed(signer), fn))
}

// checkFault requires the invocation to abort with a reason containing
// msg.
func (h *testHost) checkFault(t *testing.T, w host.Witness, msg string, fn func(e *host.Env)) {
	t.Helper()
	err := h.rt.Invoke(w, fn)
	var abort *host.AbortError
	require.ErrorAs(t, err, &abort)
	require.Contains(t, abort.Reason, msg)
}

func (h *testHost) view(t *testing.T, fn func(e *host.Env)) {
	t.Helper()
	require.NoError(t, h.rt.View(fn))
}

func (h *testHost) notifications(t *testing.T) []host.Notification {
	t.Helper()
	ns, err := h.log.Read(0, 0)
	require.NoError(t, err)
	return ns
}

func (h *testHost) offeringCount(t *testing.T, issuer common.AccountID) uint32 {
	t.Helper()
	var n uint32
	h.view(t, func(e *host.Env) { n = revshare.GetOfferingCount(e, issuer) })
	return n
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

func newAccount() common.AccountID { return randomBytes(common.AccountIDLen) }

func newAsset() common.AssetID { return randomBytes(common.AssetIDLen) }
