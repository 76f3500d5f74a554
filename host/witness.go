package host

import "bytes"

// StaticWitness approves a fixed set of accounts. It serves trusted
// embeddings and tests, where the surrounding application has already
// established who signed the request.
type StaticWitness struct {
	accounts [][]byte
}

// Witnessed returns a StaticWitness approving exactly the given
// accounts.
func Witnessed(accounts ...[]byte) *StaticWitness {
	w := &StaticWitness{accounts: make([][]byte, 0, len(accounts))}
	for _, acc := range accounts {
		cp := make([]byte, len(acc))
		copy(cp, acc)
		w.accounts = append(w.accounts, cp)
	}
	return w
}

func (w *StaticWitness) CheckWitness(account []byte) bool {
	for _, acc := range w.accounts {
		if bytes.Equal(acc, account) {
			return true
		}
	}
	return false
}
