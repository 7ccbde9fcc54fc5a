package headless

import "sync"

// Surface records the calls a panel makes on its surface.
type Surface struct {
	mu           sync.Mutex
	visible      bool
	interactable bool
	raises       int
	lowers       int
}

func (s *Surface) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = visible
}

func (s *Surface) SetInteractable(interactable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactable = interactable
}

func (s *Surface) RaiseToTop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raises++
}

func (s *Surface) LowerToBottom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lowers++
}

func (s *Surface) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *Surface) Interactable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interactable
}

func (s *Surface) Raises() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raises
}

func (s *Surface) Lowers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lowers
}

// Blocker records the opacity a panel sets on its click blocker.
type Blocker struct {
	mu      sync.Mutex
	opacity float64
	history []float64
}

func (b *Blocker) SetOpacity(opacity float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opacity = opacity
	b.history = append(b.history, opacity)
}

// Opacity returns the last opacity set.
func (b *Blocker) Opacity() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opacity
}

// Visible reports whether the last opacity set was non-zero.
func (b *Blocker) Visible() bool {
	return b.Opacity() > 0
}

// History returns every opacity set, oldest first.
func (b *Blocker) History() []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]float64(nil), b.history...)
}

// Placeholder counts how often it was shown and hidden.
type Placeholder struct {
	mu      sync.Mutex
	visible bool
	shows   int
	hides   int
}

func (p *Placeholder) Show() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = true
	p.shows++
}

func (p *Placeholder) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = false
	p.hides++
}

func (p *Placeholder) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

func (p *Placeholder) Shows() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shows
}

func (p *Placeholder) Hides() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hides
}
