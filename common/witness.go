package common

import "github.com/revora-network/revshare-contract/host"

var (
	// ErrOwnerWitnessFailed appears when the method must be called by
	// the owner of the touched state but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrWitnessFailed appears when the method must be approved by the
	// claimed caller but was not.
	ErrWitnessFailed = "witness check failed"
)

// CheckOwnerWitness checks witness of the passed owner.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(e *host.Env, owner AccountID) {
	checkWitnessWithPanic(e, owner, ErrOwnerWitnessFailed)
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(e *host.Env, caller AccountID) {
	checkWitnessWithPanic(e, caller, ErrWitnessFailed)
}

func checkWitnessWithPanic(e *host.Env, account AccountID, panicMsg string) {
	if !e.CheckWitness(account) {
		panic(panicMsg)
	}
}
