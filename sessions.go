package main

import (
	"sync"
	"time"

	"github.com/pivolan/argo_explorer/domain/models"
	"github.com/pivolan/argo_explorer/table"
	uuid "github.com/satori/go.uuid"
)

type session struct {
	explorer *table.Explorer
	touched  time.Time
}

// Sessions hands each web visitor and each chat its own explorer over a
// shared starting dataset.
type Sessions struct {
	mu       sync.Mutex
	base     *models.Dataset
	pageSize int
	byKey    map[string]*session
	uploads  map[string]int64
	issued   map[string]time.Time
	now      func() time.Time
}

func NewSessions(base *models.Dataset, pageSize int) *Sessions {
	return &Sessions{
		base:     base,
		pageSize: pageSize,
		byKey:    map[string]*session{},
		uploads:  map[string]int64{},
		issued:   map[string]time.Time{},
		now:      time.Now,
	}
}

func (s *Sessions) Explorer(key string) *table.Explorer {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byKey[key]
	if !ok {
		sess = &session{explorer: table.NewExplorer(s.base, s.pageSize)}
		s.byKey[key] = sess
	}
	sess.touched = s.now()
	return sess.explorer
}

// NewUploadToken links a web upload back to the chat that asked for it.
func (s *Sessions) NewUploadToken(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewV4().String()
	s.uploads[token] = chatID
	s.issued[token] = s.now()
	return token
}

// ClaimUploadToken returns the chat a token was issued for. A token can be
// claimed once.
func (s *Sessions) ClaimUploadToken(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chatID, ok := s.uploads[token]
	if ok {
		delete(s.uploads, token)
		delete(s.issued, token)
	}
	return chatID, ok
}

// Expire drops sessions and upload tokens idle since before cutoff.
func (s *Sessions) Expire(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, sess := range s.byKey {
		if sess.touched.Before(cutoff) {
			delete(s.byKey, key)
			n++
		}
	}
	for token, at := range s.issued {
		if at.Before(cutoff) {
			delete(s.issued, token)
			delete(s.uploads, token)
		}
	}
	return n
}
