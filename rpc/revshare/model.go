// Package revshare provides typed bindings for the revenue-share
// contract's notifications. The distribution engine and other off-chain
// consumers poll the notification log and decode entries into the event
// types defined here.
package revshare

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/revora-network/revshare-contract/common"
	"github.com/revora-network/revshare-contract/host"
	contract "github.com/revora-network/revshare-contract/revshare"
)

// ErrUnknownTag means the notification's tag names no known event.
var ErrUnknownTag = errors.New("unknown notification tag")

// ErrInvalidNotification means the notification's topics or payload do
// not match the schema of its tag.
var ErrInvalidNotification = errors.New("invalid notification")

// Event is a decoded contract notification.
type Event interface {
	// Tag returns the wire tag the event was decoded from.
	Tag() string
}

// OfferingRegistered corresponds to the offer_reg notification.
type OfferingRegistered struct {
	Issuer          common.AccountID
	Token           common.AssetID
	RevenueShareBps uint32
}

func (OfferingRegistered) Tag() string { return contract.OfferingRegisteredTag }

// RevenueReported corresponds to the rev_rep notification. Amount is a
// signed 128-bit integer; Blacklist is the point-in-time snapshot taken
// when the report was published.
type RevenueReported struct {
	Issuer    common.AccountID
	Token     common.AssetID
	Amount    *big.Int
	PeriodID  uint64
	Blacklist []common.AccountID
}

func (RevenueReported) Tag() string { return contract.RevenueReportedTag }

// MetadataCreated corresponds to the meta_new notification.
type MetadataCreated struct {
	Issuer     common.AccountID
	OfferingID string
	URI        string
}

func (MetadataCreated) Tag() string { return contract.MetadataCreatedTag }

// MetadataUpdated corresponds to the meta_upd notification.
type MetadataUpdated struct {
	Issuer     common.AccountID
	OfferingID string
	URI        string
}

func (MetadataUpdated) Tag() string { return contract.MetadataUpdatedTag }

// MetadataDeleted corresponds to the meta_del notification. It carries
// no URI; the reference no longer exists.
type MetadataDeleted struct {
	Issuer     common.AccountID
	OfferingID string
}

func (MetadataDeleted) Tag() string { return contract.MetadataDeletedTag }

// BlacklistAdded corresponds to the bl_add notification. One event is
// produced per call, including idempotent repeats.
type BlacklistAdded struct {
	Token    common.AssetID
	Investor common.AccountID
}

func (BlacklistAdded) Tag() string { return contract.BlacklistAddedTag }

// BlacklistRemoved corresponds to the bl_rem notification.
type BlacklistRemoved struct {
	Token    common.AssetID
	Investor common.AccountID
}

func (BlacklistRemoved) Tag() string { return contract.BlacklistRemovedTag }

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

type blacklistPayload struct {
	Investor common.AccountID `json:"investor"`
}

// ParseNotification decodes one notification log entry into its typed
// event.
func ParseNotification(n host.Notification) (Event, error) {
	switch n.Tag {
	case contract.OfferingRegisteredTag:
		issuer, err := singleTopic(n)
		if err != nil {
			return nil, err
		}
		var p offeringRegisteredPayload
		if err := decodePayload(n, &p); err != nil {
			return nil, err
		}
		return OfferingRegistered{
			Issuer:          issuer,
			Token:           p.Token,
			RevenueShareBps: p.RevenueShareBps,
		}, nil

	case contract.RevenueReportedTag:
		if len(n.Topics) != 2 {
			return nil, fmt.Errorf("%w: %s: want 2 topics, got %d", ErrInvalidNotification, n.Tag, len(n.Topics))
		}
		var p revenueReportedPayload
		if err := decodePayload(n, &p); err != nil {
			return nil, err
		}
		return RevenueReported{
			Issuer:    common.AccountID(n.Topics[0]),
			Token:     common.AssetID(n.Topics[1]),
			Amount:    p.Amount,
			PeriodID:  p.PeriodID,
			Blacklist: p.Blacklist,
		}, nil

	case contract.MetadataCreatedTag, contract.MetadataUpdatedTag:
		issuer, err := singleTopic(n)
		if err != nil {
			return nil, err
		}
		var p metadataPayload
		if err := decodePayload(n, &p); err != nil {
			return nil, err
		}
		if n.Tag == contract.MetadataCreatedTag {
			return MetadataCreated{Issuer: issuer, OfferingID: p.OfferingID, URI: p.URI}, nil
		}
		return MetadataUpdated{Issuer: issuer, OfferingID: p.OfferingID, URI: p.URI}, nil

	case contract.MetadataDeletedTag:
		issuer, err := singleTopic(n)
		if err != nil {
			return nil, err
		}
		var p metadataPayload
		if err := decodePayload(n, &p); err != nil {
			return nil, err
		}
		return MetadataDeleted{Issuer: issuer, OfferingID: p.OfferingID}, nil

	case contract.BlacklistAddedTag, contract.BlacklistRemovedTag:
		token, err := singleTopic(n)
		if err != nil {
			return nil, err
		}
		var p blacklistPayload
		if err := decodePayload(n, &p); err != nil {
			return nil, err
		}
		if n.Tag == contract.BlacklistAddedTag {
			return BlacklistAdded{Token: common.AssetID(token), Investor: p.Investor}, nil
		}
		return BlacklistRemoved{Token: common.AssetID(token), Investor: p.Investor}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownTag, n.Tag)
}

func singleTopic(n host.Notification) (common.AccountID, error) {
	if len(n.Topics) != 1 {
		return nil, fmt.Errorf("%w: %s: want 1 topic, got %d", ErrInvalidNotification, n.Tag, len(n.Topics))
	}
	return common.AccountID(n.Topics[0]), nil
}

func decodePayload(n host.Notification, into any) error {
	if err := json.Unmarshal(n.Data, into); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidNotification, n.Tag, err)
	}
	return nil
}
