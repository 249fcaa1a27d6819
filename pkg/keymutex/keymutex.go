package keymutex

import "sync"

// KeyMutex раздает эксклюзивные блокировки по строковому ключу.
// Операции над одним заказом сериализуются через блокировку по его id,
// операции над разными заказами идут параллельно.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyMutex {
	return &KeyMutex{
		locks: make(map[string]*lockEntry),
	}
}

func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keymutex: unlock of unlocked key " + key)
	}
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}
