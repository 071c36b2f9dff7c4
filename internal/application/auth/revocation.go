package auth

import (
	"sync"
	"time"
)

// RevocationList tokens cerrados (por jti) hasta su vencimiento. Seguro para uso concurrente.
type RevocationList struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewRevocationList lista vacía.
func NewRevocationList() *RevocationList {
	return &RevocationList{entries: make(map[string]time.Time), now: time.Now}
}

// Revoke marca jti como revocado hasta until. Aprovecha para purgar entradas vencidas.
func (l *RevocationList) Revoke(jti string, until time.Time) {
	if jti == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for k, exp := range l.entries {
		if !exp.After(now) {
			delete(l.entries, k)
		}
	}
	l.entries[jti] = until
}

// IsRevoked indica si jti sigue revocado.
func (l *RevocationList) IsRevoked(jti string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	exp, ok := l.entries[jti]
	if !ok {
		return false
	}
	if !exp.After(l.now()) {
		delete(l.entries, jti)
		return false
	}
	return true
}

// Len cantidad de tokens revocados vigentes.
func (l *RevocationList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
