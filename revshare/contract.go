package revshare

import (
	"bytes"
	"math/big"

	"github.com/revora-network/revshare-contract/common"
	"github.com/revora-network/revshare-contract/host"
)

type (
	// Offering is a registered revenue-share arrangement between an
	// issuer and an asset, with a basis-point share rate. Offerings are
	// immutable once registered and are identified by their position in
	// the issuer's sequence.
	Offering struct {
		Issuer          common.AccountID
		Token           common.AssetID
		RevenueShareBps uint32
	}
)

const (
	// MaxRevenueShareBps caps an offering's revenue share at 100%.
	MaxRevenueShareBps = 10000
	// MaxMetadataLen bounds an off-chain metadata reference, in bytes.
	MaxMetadataLen = 1024
	// MaxOfferingsPage caps a single offerings page. A requested limit
	// of zero selects this maximum.
	MaxOfferingsPage = 20
)

// Storage key tags.
const (
	tagOffering      = 0x01
	tagOfferingCount = 0x02
	tagBlacklist     = 0x03
	tagMetadata      = 0x04
)

// Notification tags, wire-compatible with the original deployment.
const (
	OfferingRegisteredTag = "offer_reg"
	RevenueReportedTag    = "rev_rep"
	MetadataCreatedTag    = "meta_new"
	MetadataUpdatedTag    = "meta_upd"
	MetadataDeletedTag    = "meta_del"
	BlacklistAddedTag     = "bl_add"
	BlacklistRemovedTag   = "bl_rem"
)

// Signed 128-bit bounds for revenue amounts.
var (
	minAmount = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

type offeringRegisteredPayload struct {
	Token           common.AssetID `json:"token"`
	RevenueShareBps uint32         `json:"revenueShareBps"`
}

type revenueReportedPayload struct {
	Amount    *big.Int           `json:"amount"`
	PeriodID  uint64             `json:"periodId"`
	Blacklist []common.AccountID `json:"blacklist"`
}

type metadataPayload struct {
	OfferingID string `json:"offeringId"`
	URI        string `json:"uri"`
}

type metadataDeletedPayload struct {
	OfferingID string `json:"offeringId"`
}

type blacklistPayload struct {
	Investor common.AccountID `json:"investor"`
}

// RegisterOffering appends a new offering to the issuer's sequence and
// produces an offer_reg notification. It must be approved by the issuer
// and panics when revenueShareBps exceeds MaxRevenueShareBps.
// TryRegisterOffering is the error-returning twin for callers that
// prefer to handle the bound themselves.
func RegisterOffering(e *host.Env, issuer common.AccountID, token common.AssetID, revenueShareBps uint32) {
	common.CheckOwnerWitness(e, issuer)
	common.RequireAccountID("registerOffering", issuer)
	common.RequireAssetID("registerOffering", token)

	if revenueShareBps > MaxRevenueShareBps {
		panic(ErrRevenueShareBps)
	}

	appendOffering(e, issuer, token, revenueShareBps)
}

// TryRegisterOffering is RegisterOffering with a recoverable validation
// outcome: it returns ErrInvalidRevenueShareBps instead of aborting when
// the share exceeds MaxRevenueShareBps and performs no mutation in that
// case. Authorization failure still aborts.
func TryRegisterOffering(e *host.Env, issuer common.AccountID, token common.AssetID, revenueShareBps uint32) error {
	common.CheckOwnerWitness(e, issuer)
	common.RequireAccountID("tryRegisterOffering", issuer)
	common.RequireAssetID("tryRegisterOffering", token)

	if revenueShareBps > MaxRevenueShareBps {
		return ErrInvalidRevenueShareBps
	}

	appendOffering(e, issuer, token, revenueShareBps)
	return nil
}

func appendOffering(e *host.Env, issuer common.AccountID, token common.AssetID, revenueShareBps uint32) {
	index := getOfferingCount(e, issuer)
	e.Put(offeringKey(issuer, index), encodeOffering(token, revenueShareBps))
	e.Put(offeringCountKey(issuer), common.Uint32Bytes(index+1))

	e.Log("registered new offering")
	e.Notify(OfferingRegisteredTag, [][]byte{issuer}, offeringRegisteredPayload{
		Token:           token,
		RevenueShareBps: revenueShareBps,
	})
}

// GetOfferingCount returns the number of offerings the issuer has
// registered, zero if none. No authorization is required.
func GetOfferingCount(e *host.Env, issuer common.AccountID) uint32 {
	return getOfferingCount(e, issuer)
}

// GetOfferingsPage returns the sub-sequence of the issuer's offerings
// starting at cursor, in registration order, and the cursor of the first
// unread element. The returned cursor is nil iff the page reached the
// end of the sequence. A limit of zero selects MaxOfferingsPage; larger
// limits are capped to it. An out-of-range cursor yields an empty page,
// not an error. No authorization is required.
func GetOfferingsPage(e *host.Env, issuer common.AccountID, cursor, limit uint32) ([]Offering, *uint32) {
	if limit == 0 || limit > MaxOfferingsPage {
		limit = MaxOfferingsPage
	}

	n := getOfferingCount(e, issuer)
	if cursor >= n {
		return nil, nil
	}

	end := cursor + limit
	if end > n || end < cursor { // the second check guards u32 wrap
		end = n
	}

	offerings := make([]Offering, 0, end-cursor)
	for i := cursor; i < end; i++ {
		offerings = append(offerings, getOffering(e, issuer, i))
	}

	if end < n {
		next := end
		return offerings, &next
	}
	return offerings, nil
}

// ReportRevenue publishes a rev_rep notification for the asset, keyed by
// issuer and token, embedding a snapshot of the asset's current
// blacklist. Negative amounts are valid and represent clawbacks or
// adjustments; the amount must fit a signed 128-bit integer. It must be
// approved by the issuer.
func ReportRevenue(e *host.Env, issuer common.AccountID, token common.AssetID, amount *big.Int, periodID uint64) {
	common.CheckOwnerWitness(e, issuer)
	common.RequireAccountID("reportRevenue", issuer)
	common.RequireAssetID("reportRevenue", token)

	if amount == nil || amount.Cmp(minAmount) < 0 || amount.Cmp(maxAmount) > 0 {
		panic(ErrAmountOutOfRange)
	}

	e.Log("revenue reported")
	e.Notify(RevenueReportedTag, [][]byte{issuer, token}, revenueReportedPayload{
		Amount:    amount,
		PeriodID:  periodID,
		Blacklist: getBlacklist(e, token),
	})
}

// BlacklistAdd adds the investor to the asset's blacklist. Adding a
// present member is a successful no-op; the bl_add notification is
// produced on every call. Any witnessed caller may invoke this, see the
// package documentation.
func BlacklistAdd(e *host.Env, caller common.AccountID, token common.AssetID, investor common.AccountID) {
	common.CheckWitness(e, caller)
	common.RequireAssetID("blacklistAdd", token)
	common.RequireAccountID("blacklistAdd", investor)

	members := getBlacklist(e, token)
	if !containsAccount(members, investor) {
		putBlacklist(e, token, append(members, investor))
		e.Log("investor blacklisted")
	}

	e.Notify(BlacklistAddedTag, [][]byte{token}, blacklistPayload{Investor: investor})
}

// BlacklistRemove removes the investor from the asset's blacklist.
// Removing an absent member is a successful no-op; the bl_rem
// notification is produced on every call.
func BlacklistRemove(e *host.Env, caller common.AccountID, token common.AssetID, investor common.AccountID) {
	common.CheckWitness(e, caller)
	common.RequireAssetID("blacklistRemove", token)
	common.RequireAccountID("blacklistRemove", investor)

	members := getBlacklist(e, token)
	var left []common.AccountID
	for i := range members {
		if !bytes.Equal(members[i], investor) {
			left = append(left, members[i])
		}
	}
	if len(left) != len(members) {
		putBlacklist(e, token, left)
		e.Log("investor removed from blacklist")
	}

	e.Notify(BlacklistRemovedTag, [][]byte{token}, blacklistPayload{Investor: investor})
}

// IsBlacklisted reports whether the investor is currently blacklisted
// for the asset. No authorization is required.
func IsBlacklisted(e *host.Env, token common.AssetID, investor common.AccountID) bool {
	return containsAccount(getBlacklist(e, token), investor)
}

// GetBlacklist returns the asset's current blacklist members in
// insertion order, each exactly once. No authorization is required.
func GetBlacklist(e *host.Env, token common.AssetID) []common.AccountID {
	return getBlacklist(e, token)
}

// SetMetadata writes the off-chain metadata reference for the offering,
// creating or overwriting the entry. It produces meta_new on first write
// for the identifier and meta_upd on overwrite. The URI must be
// non-empty and at most MaxMetadataLen bytes, otherwise the invocation
// aborts. It must be approved by the issuer.
func SetMetadata(e *host.Env, issuer common.AccountID, offeringID, uri string) {
	common.CheckOwnerWitness(e, issuer)
	common.RequireAccountID("setMetadata", issuer)
	validateMetadataURI(uri)

	key := metadataKey(issuer, offeringID)
	existed := e.Get(key) != nil
	e.Put(key, []byte(uri))

	tag := MetadataCreatedTag
	if existed {
		tag = MetadataUpdatedTag
	}
	e.Notify(tag, [][]byte{issuer}, metadataPayload{OfferingID: offeringID, URI: uri})
}

// UpdateMetadata overwrites an existing metadata reference. Unlike
// SetMetadata it does not create: the invocation aborts when no entry
// exists for the offering.
func UpdateMetadata(e *host.Env, issuer common.AccountID, offeringID, uri string) {
	common.CheckOwnerWitness(e, issuer)
	common.RequireAccountID("updateMetadata", issuer)
	validateMetadataURI(uri)

	key := metadataKey(issuer, offeringID)
	if e.Get(key) == nil {
		panic(ErrNoMetadataFound)
	}
	e.Put(key, []byte(uri))

	e.Notify(MetadataUpdatedTag, [][]byte{issuer}, metadataPayload{OfferingID: offeringID, URI: uri})
}

// GetMetadata returns the stored metadata reference for the offering.
// The second result is false when no entry exists. No authorization is
// required.
func GetMetadata(e *host.Env, issuer common.AccountID, offeringID string) (string, bool) {
	v := e.Get(metadataKey(issuer, offeringID))
	if v == nil {
		return "", false
	}
	return string(v), true
}

// DeleteMetadata removes the metadata entry for the offering and
// produces a meta_del notification carrying only the offering
// identifier. The invocation aborts when no entry exists. It must be
// approved by the issuer.
func DeleteMetadata(e *host.Env, issuer common.AccountID, offeringID string) {
	common.CheckOwnerWitness(e, issuer)
	common.RequireAccountID("deleteMetadata", issuer)

	key := metadataKey(issuer, offeringID)
	if e.Get(key) == nil {
		panic(ErrNoMetadataFound)
	}
	e.Delete(key)

	e.Notify(MetadataDeletedTag, [][]byte{issuer}, metadataDeletedPayload{OfferingID: offeringID})
}

func validateMetadataURI(uri string) {
	if len(uri) == 0 {
		panic(ErrEmptyMetadataURI)
	}
	if len(uri) > MaxMetadataLen {
		panic(ErrMetadataURITooLong)
	}
}

func offeringKey(issuer common.AccountID, index uint32) []byte {
	return common.MakeKey(tagOffering, issuer, common.Uint32Bytes(index))
}

func offeringCountKey(issuer common.AccountID) []byte {
	return common.MakeKey(tagOfferingCount, issuer)
}

func blacklistKey(token common.AssetID) []byte {
	return common.MakeKey(tagBlacklist, token)
}

func metadataKey(issuer common.AccountID, offeringID string) []byte {
	return common.MakeKey(tagMetadata, issuer, []byte(offeringID))
}

func getOfferingCount(e *host.Env, issuer common.AccountID) uint32 {
	return common.BytesUint32(e.Get(offeringCountKey(issuer)))
}

func getOffering(e *host.Env, issuer common.AccountID, index uint32) Offering {
	data := e.Get(offeringKey(issuer, index))
	if len(data) != common.AssetIDLen+4 {
		panic("missing offering record") // count and sequence diverged
	}
	return Offering{
		Issuer:          issuer,
		Token:           common.AssetID(data[:common.AssetIDLen]),
		RevenueShareBps: common.BytesUint32(data[common.AssetIDLen:]),
	}
}

func encodeOffering(token common.AssetID, revenueShareBps uint32) []byte {
	record := make([]byte, 0, common.AssetIDLen+4)
	record = append(record, token...)
	record = append(record, common.Uint32Bytes(revenueShareBps)...)
	return record
}

func getBlacklist(e *host.Env, token common.AssetID) []common.AccountID {
	data := e.Get(blacklistKey(token))
	if len(data) == 0 {
		return nil
	}
	members := make([]common.AccountID, 0, len(data)/common.AccountIDLen)
	for i := 0; i+common.AccountIDLen <= len(data); i += common.AccountIDLen {
		members = append(members, common.AccountID(data[i:i+common.AccountIDLen]))
	}
	return members
}

// putBlacklist stores the membership as concatenated fixed-size ids. An
// empty set is stored as an absent key.
func putBlacklist(e *host.Env, token common.AssetID, members []common.AccountID) {
	if len(members) == 0 {
		e.Delete(blacklistKey(token))
		return
	}
	data := make([]byte, 0, len(members)*common.AccountIDLen)
	for i := range members {
		data = append(data, members[i]...)
	}
	e.Put(blacklistKey(token), data)
}

func containsAccount(members []common.AccountID, account common.AccountID) bool {
	for i := range members {
		if bytes.Equal(members[i], account) {
			return true
		}
	}
	return false
}
