package tool

import "context"

// Session identifies the active conversation. Tools read the caller's
// opaque identity and session ID from here rather than from explicit
// arguments; the agent framework never passes identity through speech.
type Session struct {
	// Identity is the opaque user identifier of the active participant.
	Identity string

	// SessionID names the conversation, e.g. the room the participant
	// joined.
	SessionID string
}

type sessionKey struct{}

// WithSession returns a new context carrying the session
func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFrom retrieves the session from the context. The zero Session
// is returned when none is attached.
func SessionFrom(ctx context.Context) Session {
	if session, ok := ctx.Value(sessionKey{}).(Session); ok {
		return session
	}
	return Session{}
}
