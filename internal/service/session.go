package service

import (
	"glin-wallet/internal/core/domain"
	"glin-wallet/internal/core/ports"

	"github.com/google/uuid"
)

// session is either lockedSession or *unlockedSession. Code that needs the
// secret type-switches on it, so "no secret" cannot be mistaken for an
// empty one.
type session interface {
	isSession()
}

type lockedSession struct{}

func (lockedSession) isSession() {}

// unlockedSession owns a copy of the decrypted phrase and the active
// keypair. It is never copied out of the WalletManager and release must be
// called exactly once when it is replaced.
//
// release zeroes only what the session owns: its phrase bytes and the
// keypair's mini-secret. Strings handed out by phrase() and the key
// material held inside the signing library are not reachable from here.
type unlockedSession struct {
	walletID uuid.UUID
	account  domain.Account
	seed     []byte
	keypair  ports.KeyPair
}

func (*unlockedSession) isSession() {}

func newUnlockedSession(walletID uuid.UUID, account domain.Account, phrase string, keypair ports.KeyPair) *unlockedSession {
	return &unlockedSession{
		walletID: walletID,
		account:  account,
		seed:     []byte(phrase),
		keypair:  keypair,
	}
}

// phrase returns an immutable copy for derivation calls.
func (s *unlockedSession) phrase() string {
	return string(s.seed)
}

// swapKeypair installs kp as the active keypair and wipes the previous one.
func (s *unlockedSession) swapKeypair(account domain.Account, kp ports.KeyPair) {
	if s.keypair != nil {
		s.keypair.Wipe()
	}
	s.account = account
	s.keypair = kp
}

func (s *unlockedSession) release() {
	wipe(s.seed)
	s.seed = nil
	if s.keypair != nil {
		s.keypair.Wipe()
		s.keypair = nil
	}
}

// releaseSession wipes s if it holds secrets.
func releaseSession(s session) {
	if u, ok := s.(*unlockedSession); ok {
		u.release()
	}
}
