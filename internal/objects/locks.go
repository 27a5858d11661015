package objects

import "sync"

// projectLocks hands out one RWMutex per project name. Writers to a
// project are serialized; readers share.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func newProjectLocks() *projectLocks {
	return &projectLocks{locks: make(map[string]*sync.RWMutex)}
}

func (p *projectLocks) get(project string) *sync.RWMutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	l, ok := p.locks[project]
	if !ok {
		l = &sync.RWMutex{}
		p.locks[project] = l
	}
	return l
}

// lock takes the writer lock and returns its release.
func (p *projectLocks) lock(project string) func() {
	l := p.get(project)
	l.Lock()
	return l.Unlock
}

// rlock takes a reader lock and returns its release.
func (p *projectLocks) rlock(project string) func() {
	l := p.get(project)
	l.RLock()
	return l.RUnlock
}
