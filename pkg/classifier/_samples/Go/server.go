package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
)

type store struct {
	mu    sync.RWMutex
	items map[string]string
}

func newStore() *store {
	return &store{items: make(map[string]string)}
}

func (s *store) get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (s *store) handle(w http.ResponseWriter, r *http.Request) {
	v, err := s.get(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	fmt.Fprintln(w, v)
}

func main() {
	s := newStore()
	if err := http.ListenAndServe(":8080", http.HandlerFunc(s.handle)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
