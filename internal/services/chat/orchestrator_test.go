package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/kildre/talktalk/internal/domain"
	"github.com/kildre/talktalk/internal/store"
)

type fakeEndpoint struct {
	resp     *Response
	err      error
	requests []*Request

	// onSend runs before the canned response is returned; used to observe
	// mid-flight store state or to delete the conversation under the call.
	onSend func(req *Request)
}

func (f *fakeEndpoint) Send(ctx context.Context, req *Request) (*Response, error) {
	f.requests = append(f.requests, req)
	if f.onSend != nil {
		f.onSend(req)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}

func newOrchestrator(t *testing.T, s store.ConversationStore, ep Endpoint) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(s, ep, DefaultConfig(), noopLogger{})
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}
	return o
}

func TestSubmit_SuccessMutatesPendingInPlace(t *testing.T) {
	s := store.NewMemoryStore()
	conv := s.CreateConversation()

	ep := &fakeEndpoint{
		resp: &Response{
			Content:       "hi back",
			VoiceSettings: &domain.VoiceSettings{Voice: "en-US-Neural2-J", Speed: 1.0, Pitch: 2},
		},
	}
	ep.onSend = func(*Request) {
		// Mid-flight: exactly two new messages, the second one loading.
		msgs := s.CurrentMessages()
		if len(msgs) != 2 {
			t.Errorf("mid-flight message count = %d, want 2", len(msgs))
		} else if !msgs[1].IsLoading {
			t.Errorf("second mid-flight message is not loading")
		}
	}

	o := newOrchestrator(t, s, ep)
	if err := o.Submit(context.Background(), conv, "hello", nil); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	msgs := s.CurrentMessages()
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2 (reply mutated in place)", len(msgs))
	}
	reply := msgs[1]
	if reply.Role != domain.RoleAssistant || reply.IsLoading {
		t.Errorf("reply not finalized: %+v", reply)
	}
	if reply.Content != "hi back" {
		t.Errorf("reply content = %q, want %q", reply.Content, "hi back")
	}
	if reply.VoiceSettings == nil || reply.VoiceSettings.Voice != "en-US-Neural2-J" {
		t.Errorf("voice settings hint not copied: %+v", reply.VoiceSettings)
	}
	if o.Typing() {
		t.Errorf("typing flag still set after Submit")
	}
}

func TestSubmit_RequestShape(t *testing.T) {
	s := store.NewMemoryStore()
	conv := s.CreateConversation()
	s.AppendMessage(conv, store.MessageDraft{Role: domain.RoleUser, Content: "earlier question"})
	s.AppendMessage(conv, store.MessageDraft{Role: domain.RoleAssistant, Content: "earlier answer"})

	ep := &fakeEndpoint{resp: &Response{Content: "ok"}}
	o := newOrchestrator(t, s, ep)

	images := []domain.ChatImage{{Data: "data:image/png;base64,QUJD", MimeType: "image/png"}}
	if err := o.Submit(context.Background(), conv, "new question", images); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(ep.requests) != 1 {
		t.Fatalf("endpoint called %d times, want exactly 1", len(ep.requests))
	}
	req := ep.requests[0]
	if req.Message != "new question" || req.ConversationID != conv {
		t.Errorf("request = %+v", req)
	}
	// History covers the finalized messages including the new user message,
	// never the loading placeholder.
	wantHistory := []HistoryEntry{
		{Role: domain.RoleUser, Content: "earlier question"},
		{Role: domain.RoleAssistant, Content: "earlier answer"},
		{Role: domain.RoleUser, Content: "new question"},
	}
	if len(req.History) != len(wantHistory) {
		t.Fatalf("history length = %d, want %d: %+v", len(req.History), len(wantHistory), req.History)
	}
	for i, want := range wantHistory {
		if req.History[i] != want {
			t.Errorf("history[%d] = %+v, want %+v", i, req.History[i], want)
		}
	}
	if len(req.Images) != 1 || req.Images[0].Format != "png" || req.Images[0].Source.Bytes != "QUJD" {
		t.Errorf("images = %+v", req.Images)
	}
}

func TestSubmit_ResponseFieldFallbacks(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want string
	}{
		{"content preferred", &Response{Content: "a", Response: "b"}, "a"},
		{"response fallback", &Response{Response: "b"}, "b"},
		{"no-response marker", &Response{}, DefaultConfig().NoResponseText},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := store.NewMemoryStore()
			conv := s.CreateConversation()
			o := newOrchestrator(t, s, &fakeEndpoint{resp: tc.resp})

			if err := o.Submit(context.Background(), conv, "hello", nil); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			msgs := s.CurrentMessages()
			if got := msgs[len(msgs)-1].Content; got != tc.want {
				t.Errorf("reply = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSubmit_EndpointFailureWritesApology(t *testing.T) {
	s := store.NewMemoryStore()
	conv := s.CreateConversation()
	o := newOrchestrator(t, s, &fakeEndpoint{err: errors.New("connection refused")})

	if err := o.Submit(context.Background(), conv, "hello", nil); err != nil {
		t.Fatalf("Submit() error = %v, endpoint failure must be recovered locally", err)
	}

	msgs := s.CurrentMessages()
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	reply := msgs[1]
	if reply.Content != DefaultConfig().ApologyText {
		t.Errorf("reply = %q, want apology text", reply.Content)
	}
	if reply.IsLoading {
		t.Errorf("loading flag not cleared on failure")
	}
	if o.Typing() {
		t.Errorf("typing flag still set after failure")
	}
}

func TestSubmit_Validation(t *testing.T) {
	s := store.NewMemoryStore()
	conv := s.CreateConversation()
	o := newOrchestrator(t, s, &fakeEndpoint{resp: &Response{Content: "ok"}})

	t.Run("empty input rejected", func(t *testing.T) {
		err := o.Submit(context.Background(), conv, "", nil)
		var chatErr *ChatError
		if !errors.As(err, &chatErr) || chatErr.Type != ErrTypeValidation {
			t.Errorf("Submit() error = %v, want validation error", err)
		}
		if n := len(s.CurrentMessages()); n != 0 {
			t.Errorf("store mutated by rejected submit: %d messages", n)
		}
	})

	t.Run("image-only input accepted", func(t *testing.T) {
		img := []domain.ChatImage{{Data: "AAAA", MimeType: "image/png"}}
		if err := o.Submit(context.Background(), conv, "", img); err != nil {
			t.Errorf("Submit() error = %v", err)
		}
	})

	t.Run("unknown conversation rejected", func(t *testing.T) {
		err := o.Submit(context.Background(), "missing", "hello", nil)
		var chatErr *ChatError
		if !errors.As(err, &chatErr) || chatErr.Type != ErrTypeNotFound {
			t.Errorf("Submit() error = %v, want not-found error", err)
		}
	})
}

func TestSubmit_RejectsWhilePending(t *testing.T) {
	s := store.NewMemoryStore()
	conv := s.CreateConversation()
	s.AppendMessage(conv, store.MessageDraft{Role: domain.RoleUser, Content: "first"})
	s.AppendMessage(conv, store.MessageDraft{Role: domain.RoleAssistant, IsLoading: true})

	ep := &fakeEndpoint{resp: &Response{Content: "ok"}}
	o := newOrchestrator(t, s, ep)

	if err := o.Submit(context.Background(), conv, "second", nil); !errors.Is(err, ErrReplyPending) {
		t.Errorf("Submit() error = %v, want ErrReplyPending", err)
	}
	if len(ep.requests) != 0 {
		t.Errorf("endpoint called for rejected submit")
	}
	if n := len(s.CurrentMessages()); n != 2 {
		t.Errorf("store mutated by rejected submit: %d messages", n)
	}
}

func TestSubmit_ConversationDeletedMidFlight(t *testing.T) {
	s := store.NewMemoryStore()
	conv := s.CreateConversation()

	ep := &fakeEndpoint{resp: &Response{Content: "too late"}}
	ep.onSend = func(*Request) { s.DeleteConversation(conv) }

	o := newOrchestrator(t, s, ep)
	if err := o.Submit(context.Background(), conv, "hello", nil); err != nil {
		t.Fatalf("Submit() error = %v, lost update must be silent", err)
	}
	if n := len(s.Conversations()); n != 0 {
		t.Errorf("conversation resurrected: %d", n)
	}
	if o.Typing() {
		t.Errorf("typing flag leaked after lost update")
	}
}
