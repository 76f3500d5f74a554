package revshare_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/revora-network/revshare-contract/common"
	"github.com/revora-network/revshare-contract/host"
	contract "github.com/revora-network/revshare-contract/revshare"
	rpcrevshare "github.com/revora-network/revshare-contract/rpc/revshare"
	"github.com/stretchr/testify/require"
)

type testChain struct {
	rt  *host.Runtime
	log *host.MemLog
}

func newTestChain() *testChain {
	log := host.NewMemLog()
	return &testChain{
		rt:  host.NewRuntime(host.NewMemStorage(), log, nil),
		log: log,
	}
}

func (c *testChain) invokeAs(t *testing.T, signer []byte, fn func(e *host.Env)) {
	t.Helper()
	require.NoError(t, c.rt.Invoke(host.Witnessed(signer), fn))
}

func (c *testChain) lastNotification(t *testing.T) host.Notification {
	t.Helper()
	ns, err := c.log.Read(0, 0)
	require.NoError(t, err)
	require.NotEmpty(t, ns)
	return ns[len(ns)-1]
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}

func newAccount() common.AccountID { return randomBytes(common.AccountIDLen) }
func newAsset() common.AssetID     { return randomBytes(common.AssetIDLen) }

func TestParseOfferingRegistered(t *testing.T) {
	c := newTestChain()
	issuer := newAccount()
	token := newAsset()

	c.invokeAs(t, issuer, func(e *host.Env) {
		contract.RegisterOffering(e, issuer, token, 1500)
	})

	ev, err := rpcrevshare.ParseNotification(c.lastNotification(t))
	require.NoError(t, err)

	reg, ok := ev.(rpcrevshare.OfferingRegistered)
	require.True(t, ok, "expected OfferingRegistered, got %T", ev)
	require.Equal(t, contract.OfferingRegisteredTag, reg.Tag())
	require.Equal(t, issuer, reg.Issuer)
	require.Equal(t, token, reg.Token)
	require.EqualValues(t, 1500, reg.RevenueShareBps)
}

func TestParseRevenueReported(t *testing.T) {
	c := newTestChain()
	issuer := newAccount()
	token := newAsset()
	investor := newAccount()

	amount, ok := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	require.True(t, ok)

	c.invokeAs(t, issuer, func(e *host.Env) {
		contract.BlacklistAdd(e, issuer, token, investor)
		contract.ReportRevenue(e, issuer, token, amount, 7)
	})

	ev, err := rpcrevshare.ParseNotification(c.lastNotification(t))
	require.NoError(t, err)

	rep, ok := ev.(rpcrevshare.RevenueReported)
	require.True(t, ok, "expected RevenueReported, got %T", ev)
	require.Equal(t, issuer, rep.Issuer)
	require.Equal(t, token, rep.Token)
	require.Zero(t, rep.Amount.Cmp(amount))
	require.EqualValues(t, 7, rep.PeriodID)
	require.Equal(t, []common.AccountID{investor}, rep.Blacklist)
}

func TestParseMetadataEvents(t *testing.T) {
	c := newTestChain()
	issuer := newAccount()

	c.invokeAs(t, issuer, func(e *host.Env) {
		contract.SetMetadata(e, issuer, "series-a", "ipfs://QmFirst")
		contract.SetMetadata(e, issuer, "series-a", "ipfs://QmSecond")
		contract.DeleteMetadata(e, issuer, "series-a")
	})

	ns, err := c.log.Read(0, 0)
	require.NoError(t, err)
	require.Len(t, ns, 3)

	ev, err := rpcrevshare.ParseNotification(ns[0])
	require.NoError(t, err)
	created, ok := ev.(rpcrevshare.MetadataCreated)
	require.True(t, ok, "expected MetadataCreated, got %T", ev)
	require.Equal(t, issuer, created.Issuer)
	require.Equal(t, "series-a", created.OfferingID)
	require.Equal(t, "ipfs://QmFirst", created.URI)

	ev, err = rpcrevshare.ParseNotification(ns[1])
	require.NoError(t, err)
	updated, ok := ev.(rpcrevshare.MetadataUpdated)
	require.True(t, ok, "expected MetadataUpdated, got %T", ev)
	require.Equal(t, "ipfs://QmSecond", updated.URI)

	ev, err = rpcrevshare.ParseNotification(ns[2])
	require.NoError(t, err)
	deleted, ok := ev.(rpcrevshare.MetadataDeleted)
	require.True(t, ok, "expected MetadataDeleted, got %T", ev)
	require.Equal(t, issuer, deleted.Issuer)
	require.Equal(t, "series-a", deleted.OfferingID)
}

func TestParseBlacklistEvents(t *testing.T) {
	c := newTestChain()
	caller := newAccount()
	token := newAsset()
	investor := newAccount()

	c.invokeAs(t, caller, func(e *host.Env) {
		contract.BlacklistAdd(e, caller, token, investor)
		contract.BlacklistRemove(e, caller, token, investor)
	})

	ns, err := c.log.Read(0, 0)
	require.NoError(t, err)
	require.Len(t, ns, 2)

	ev, err := rpcrevshare.ParseNotification(ns[0])
	require.NoError(t, err)
	added, ok := ev.(rpcrevshare.BlacklistAdded)
	require.True(t, ok, "expected BlacklistAdded, got %T", ev)
	require.Equal(t, token, added.Token)
	require.Equal(t, investor, added.Investor)

	ev, err = rpcrevshare.ParseNotification(ns[1])
	require.NoError(t, err)
	removed, ok := ev.(rpcrevshare.BlacklistRemoved)
	require.True(t, ok, "expected BlacklistRemoved, got %T", ev)
	require.Equal(t, token, removed.Token)
	require.Equal(t, investor, removed.Investor)
}

func TestParseNotificationErrors(t *testing.T) {
	t.Run("unknown tag", func(t *testing.T) {
		_, err := rpcrevshare.ParseNotification(host.Notification{Tag: "transfer"})
		require.ErrorIs(t, err, rpcrevshare.ErrUnknownTag)
	})

	t.Run("wrong topic count", func(t *testing.T) {
		_, err := rpcrevshare.ParseNotification(host.Notification{
			Tag:  contract.OfferingRegisteredTag,
			Data: []byte(`{}`),
		})
		require.ErrorIs(t, err, rpcrevshare.ErrInvalidNotification)

		_, err = rpcrevshare.ParseNotification(host.Notification{
			Tag:    contract.RevenueReportedTag,
			Topics: [][]byte{newAccount()},
			Data:   []byte(`{}`),
		})
		require.ErrorIs(t, err, rpcrevshare.ErrInvalidNotification)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := rpcrevshare.ParseNotification(host.Notification{
			Tag:    contract.OfferingRegisteredTag,
			Topics: [][]byte{newAccount()},
			Data:   []byte(`not json`),
		})
		require.ErrorIs(t, err, rpcrevshare.ErrInvalidNotification)
	})
}
