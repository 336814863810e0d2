package grid

import "github.com/google/uuid"

// Token identifies one mount of a view. Async results carry the token captured when they were requested.
type Token struct {
	id     string
	viewID string
}

// ViewID returns the view the token was issued for.
func (t Token) ViewID() string {
	return t.viewID
}

// Liveness tracks the current mount so stale async results can be discarded.
type Liveness struct {
	current Token
	mounted bool
}

// Mount issues a fresh token for viewID and invalidates all earlier ones.
func (l *Liveness) Mount(viewID string) Token {
	l.current = Token{id: uuid.NewString(), viewID: viewID}
	l.mounted = true
	return l.current
}

// Unmount invalidates the current token.
func (l *Liveness) Unmount() {
	l.current = Token{}
	l.mounted = false
}

// Alive reports whether t belongs to the current mount.
func (l *Liveness) Alive(t Token) bool {
	return l.mounted && t.id != "" && t == l.current
}
