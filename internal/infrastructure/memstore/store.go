package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/verification-api/internal/domain"
	"github.com/verification-api/internal/pkg/id"
	"github.com/verification-api/internal/pkg/otp"
)

// sweepInterval bounds how long consumed-by-time entries can linger before
// the janitor removes them. Correctness never depends on the sweep: Verify
// checks expiry on every call.
const sweepInterval = 5 * time.Minute

// defaultTTL applies when the store is constructed without a usable TTL.
const defaultTTL = 10 * time.Minute

// Store keeps issued verification codes in process memory, keyed by
// identifier, with at most one live record per identifier. It is the only
// copy of the data: a process restart discards every pending code.
//
// All read-modify-write sequences run under one mutex, so two concurrent
// verifies of the same record cannot both report success and a sweep cannot
// race a legitimate verify.
type Store struct {
	mu      sync.Mutex
	records map[string]domain.VerificationRecord

	ttl time.Duration
	gen otp.Generator
	now func() time.Time // overridable in tests to simulate expiry
}

// New creates a Store issuing codes valid for ttl, generated by gen.
// A nil gen falls back to the six-digit generator. A background janitor
// sweeps expired entries to bound memory.
func New(ttl time.Duration, gen otp.Generator) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if gen == nil {
		gen = otp.SixDigits
	}
	s := &Store{
		records: make(map[string]domain.VerificationRecord),
		ttl:     ttl,
		gen:     gen,
		now:     time.Now,
	}
	go s.janitor()
	return s
}

// TTL reports how long issued codes stay valid.
func (s *Store) TTL() time.Duration { return s.ttl }

// Issue stores a fresh code for identifier, replacing any existing record.
// When suppliedCode is empty a code is drawn from the generator; a non-empty
// suppliedCode is stored verbatim (test tooling and support overrides).
// The returned record carries the code for the caller to deliver.
func (s *Store) Issue(ctx context.Context, identifier, suppliedCode string) (domain.VerificationRecord, error) {
	code := suppliedCode
	if code == "" {
		generated, err := s.gen()
		if err != nil {
			return domain.VerificationRecord{}, err
		}
		code = generated
	}

	now := s.now()
	rec := domain.VerificationRecord{
		RecordID:   id.New(),
		Identifier: identifier,
		Code:       code,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}

	s.mu.Lock()
	s.records[identifier] = rec
	s.mu.Unlock()
	return rec, nil
}

// Verify checks submittedCode against the record stored for identifier.
// The record is removed on success (single-use) and on expiry detection;
// a mismatch leaves it in place so the caller may retry until the TTL
// runs out.
func (s *Store) Verify(ctx context.Context, identifier, submittedCode string) domain.VerifyStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[identifier]
	if !ok {
		return domain.VerifyNotFound
	}
	if rec.Expired(s.now()) {
		delete(s.records, identifier)
		return domain.VerifyExpired
	}
	if rec.Code != submittedCode {
		return domain.VerifyMismatch
	}
	delete(s.records, identifier)
	return domain.VerifySuccess
}

// janitor removes expired entries every sweepInterval.
func (s *Store) janitor() {
	for {
		time.Sleep(sweepInterval)
		s.sweep()
	}
}

func (s *Store) sweep() {
	now := s.now()
	s.mu.Lock()
	for key, rec := range s.records {
		if rec.Expired(now) {
			delete(s.records, key)
		}
	}
	s.mu.Unlock()
}
