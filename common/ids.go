package common

import "github.com/mr-tron/base58"

const (
	// AccountIDLen is the byte length of a script-hash style account
	// identifier.
	AccountIDLen = 20
	// AssetIDLen is the byte length of an asset (token) identifier.
	AssetIDLen = 20
)

// AccountID identifies an account on the ledger.
type AccountID []byte

// AssetID identifies an asset whose revenue is shared.
type AssetID []byte

func (id AccountID) String() string { return base58.Encode(id) }

func (id AssetID) String() string { return base58.Encode(id) }

// DecodeAccountID parses the base58 string form of an account
// identifier.
func DecodeAccountID(s string) (AccountID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, err
	}
	return AccountID(b), nil
}

// RequireAccountID panics if id is not a well-formed account identifier.
// The given operation name prefixes the panic message.
func RequireAccountID(op string, id AccountID) {
	if len(id) != AccountIDLen {
		panic(op + ": incorrect account identifier")
	}
}

// RequireAssetID panics if id is not a well-formed asset identifier.
func RequireAssetID(op string, id AssetID) {
	if len(id) != AssetIDLen {
		panic(op + ": incorrect asset identifier")
	}
}
