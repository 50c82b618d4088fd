package terminal

import (
	"context"
	"testing"
	"time"
)

type fakeSession struct {
	id      string
	writes  [][]byte
	resizes [][2]int
	closed  bool
	updates chan Reply
}

func newFakeSession(id string) *fakeSession {
	return &fakeSession{id: id, updates: make(chan Reply, 4)}
}

func (f *fakeSession) ID() string { return f.id }

func (f *fakeSession) Write(data []byte) (int, error) {
	f.writes = append(f.writes, data)
	return len(data), nil
}

func (f *fakeSession) Resize(cols, rows int) error {
	f.resizes = append(f.resizes, [2]int{cols, rows})
	return nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

func (f *fakeSession) Updates() <-chan Reply {
	return f.updates
}

func TestCellAttrHas(t *testing.T) {
	a := AttrBold | AttrUnderline
	if !a.Has(AttrBold) || a.Has(AttrItalic) {
		t.Errorf("unexpected Has result for %v", a)
	}
}

func TestClientDispatchesWriteToAttachedSession(t *testing.T) {
	client := NewClient()
	session := newFakeSession("s1")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client.Attach(ctx, session)
	go client.Run(ctx)

	client.Requests <- Request{Kind: RequestWrite, SessionID: "s1", Input: []byte("ls\n")}
	time.Sleep(20 * time.Millisecond)

	if len(session.writes) != 1 || string(session.writes[0]) != "ls\n" {
		t.Errorf("unexpected writes %+v", session.writes)
	}
}

func TestClientRequestForUnknownSessionRepliesError(t *testing.T) {
	client := NewClient()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Run(ctx)

	client.Requests <- Request{Kind: RequestWrite, SessionID: "missing"}
	select {
	case reply := <-client.Replies:
		if reply.Err != ErrUnknownSession {
			t.Errorf("expected ErrUnknownSession, got %v", reply.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for reply")
	}
}

func TestClientForwardsSessionUpdatesToReplies(t *testing.T) {
	client := NewClient()
	session := newFakeSession("s1")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client.Attach(ctx, session)
	go client.Run(ctx)

	session.updates <- Reply{SessionID: "s1", Grid: &Grid{Cols: 80, Rows: 24}}
	select {
	case reply := <-client.Replies:
		if reply.SessionID != "s1" || reply.Grid == nil {
			t.Errorf("unexpected forwarded reply %+v", reply)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for forwarded update")
	}
}

func TestClientResizeAndCloseDetachesSession(t *testing.T) {
	client := NewClient()
	session := newFakeSession("s1")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client.Attach(ctx, session)
	go client.Run(ctx)

	client.Requests <- Request{Kind: RequestResize, SessionID: "s1", Cols: 100, Rows: 40}
	client.Requests <- Request{Kind: RequestClose, SessionID: "s1"}
	time.Sleep(20 * time.Millisecond)

	if len(session.resizes) != 1 || session.resizes[0] != [2]int{100, 40} {
		t.Errorf("unexpected resizes %+v", session.resizes)
	}
	if !session.closed {
		t.Error("expected session to be closed")
	}
	if _, ok := client.sessions["s1"]; ok {
		t.Error("expected session to be detached after close")
	}
}
