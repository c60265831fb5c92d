// Package vending exposes the utility-purchase flow over HTTP: one session
// per screen flow, driven step by step by the client.
package vending

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gebv/billup/purchase"
)

var (
	purchasesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "billup_purchases_total",
		Help: "Purchase submissions by terminal outcome.",
	}, []string{"outcome"})

	purchaseAmbiguousTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "billup_purchases_settlement_unknown_total",
		Help: "Purchase submissions with an unknown settlement status.",
	})

	verifyFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "billup_verify_failures_total",
		Help: "Account verification failures.",
	})
)

func init() {
	prometheus.MustRegister(purchasesTotal, purchaseAmbiguousTotal, verifyFailuresTotal)
}

var errSessionNotFound = errors.New("session not found")

// registry holds live purchase sessions keyed by an opaque ID.
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*purchase.Session
}

func newRegistry() *registry {
	return &registry{
		sessions: make(map[string]*purchase.Session),
	}
}

func (r *registry) create(s *purchase.Session) string {
	id := newSessionID()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = s
	return id
}

func (r *registry) get(id string) (*purchase.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	return s, nil
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
