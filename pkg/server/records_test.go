package server

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"

	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func newTestServer(t *testing.T, nodes ...*vdom.Node) (*Server, *vdom.Tree) {
	t.Helper()
	tree := vdom.NewTree()
	tree.Mount(nodes...)
	s := New(tree, DefaultConfig(),
		WithLogger(zaptest.NewLogger(t)),
		WithTracer(noop.NewTracerProvider().Tracer("test")))
	return s, tree
}

// fakeClient registers a connectionless client that only buffers frames.
func fakeClient(s *Server) *client {
	c := &client{id: "fake", send: make(chan []byte, 16), done: make(chan struct{})}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	return c
}

func nextRecords(t *testing.T, c *client) *protocol.RecordsFrame {
	t.Helper()
	select {
	case msg := <-c.send:
		f, err := protocol.DecodeFrame(msg)
		require.NoError(t, err)
		require.Equal(t, protocol.FrameRecords, f.Type)
		rf, err := protocol.DecodeRecordsFrame(f.Payload)
		require.NoError(t, err)
		return rf
	default:
		t.Fatal("no frame queued")
		return nil
	}
}

func TestUpdateTranslatesMutations(t *testing.T) {
	list := func() *vdom.Node {
		return vdom.Ul(vdom.ID("list"), vdom.Li(vdom.Text("a")), vdom.Li(vdom.Text("b")))
	}
	// IDs: ul=1, li a=2, li b=3; elements created in fn start at 4.
	tests := []struct {
		name string
		fn   func(t *vdom.Tree) error
		want []protocol.Record
	}{
		{
			name: "set attribute",
			fn: func(t *vdom.Tree) error {
				return t.GetElementByID("list").SetAttribute("title", "x")
			},
			want: []protocol.Record{{Op: protocol.OpSetAttr, NodeID: 1, Key: "title", Value: "x"}},
		},
		{
			name: "empty class removes the attribute",
			fn: func(t *vdom.Tree) error {
				ul := t.GetElementByID("list")
				if err := ul.ClassList().Add("open"); err != nil {
					return err
				}
				return ul.ClassList().Remove("open")
			},
			want: []protocol.Record{
				{Op: protocol.OpSetAttr, NodeID: 1, Key: "class", Value: "open"},
				{Op: protocol.OpRemoveAttr, NodeID: 1, Key: "class"},
			},
		},
		{
			name: "text of a leaf",
			fn: func(t *vdom.Tree) error {
				return t.GetElementByID("list").FirstChild().SetTextContent("z")
			},
			want: []protocol.Record{{Op: protocol.OpSetText, NodeID: 2, Value: "z"}},
		},
		{
			name: "text of an element with children",
			fn: func(t *vdom.Tree) error {
				return t.GetElementByID("list").SetTextContent("t")
			},
			want: []protocol.Record{{
				Op:     protocol.OpReplaceNode,
				NodeID: 1,
				HTML:   `<ul id="list" data-vid="1"><li data-vid="2">a</li><li data-vid="3">b</li>t</ul>`,
			}},
		},
		{
			name: "append child",
			fn: func(t *vdom.Tree) error {
				return t.GetElementByID("list").AppendChild(t.CreateElement("li"))
			},
			want: []protocol.Record{{Op: protocol.OpInsertNode, ParentID: 1, Index: 2, NodeID: 4, HTML: `<li data-vid="4"></li>`}},
		},
		{
			name: "remove self",
			fn: func(t *vdom.Tree) error {
				return t.GetElementByID("list").LastChild().Remove()
			},
			want: []protocol.Record{{Op: protocol.OpRemoveNode, NodeID: 3}},
		},
		{
			name: "remove child",
			fn: func(t *vdom.Tree) error {
				ul := t.GetElementByID("list")
				return ul.RemoveChild(ul.FirstChild())
			},
			want: []protocol.Record{{Op: protocol.OpRemoveNode, NodeID: 2}},
		},
		{
			name: "replace child",
			fn: func(t *vdom.Tree) error {
				ul := t.GetElementByID("list")
				return ul.ReplaceChild(t.CreateElement("hr"), ul.FirstChild())
			},
			want: []protocol.Record{
				{Op: protocol.OpRemoveNode, NodeID: 4},
				{Op: protocol.OpReplaceNode, NodeID: 2, HTML: `<hr data-vid="4"/>`},
			},
		},
		{
			name: "prepend under a parent",
			fn: func(t *vdom.Tree) error {
				return t.GetElementByID("list").LastChild().Prepend(t.CreateElement("li"))
			},
			want: []protocol.Record{{Op: protocol.OpInsertNode, ParentID: 1, Index: 1, NodeID: 4, HTML: `<li data-vid="4"></li>`}},
		},
		{
			name: "top-level change resets",
			fn: func(t *vdom.Tree) error {
				return t.AppendChild(t.CreateElement("p"))
			},
			want: []protocol.Record{{
				Op:   protocol.OpReset,
				HTML: `<ul id="list" data-vid="1"><li data-vid="2">a</li><li data-vid="3">b</li></ul><p data-vid="4"></p>`,
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(t, list())
			c := fakeClient(s)

			require.NoError(t, s.Update(context.Background(), tc.fn))
			rf := nextRecords(t, c)
			assert.Equal(t, uint64(1), rf.Seq)
			if diff := cmp.Diff(tc.want, rf.Records); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateWithoutChangesSendsNothing(t *testing.T) {
	s, _ := newTestServer(t, vdom.P())
	c := fakeClient(s)
	require.NoError(t, s.Update(context.Background(), func(*vdom.Tree) error { return nil }))
	assert.Empty(t, c.send)
}

func TestUpdateErrorStillBroadcasts(t *testing.T) {
	s, _ := newTestServer(t, vdom.P(vdom.ID("p")))
	c := fakeClient(s)
	boom := errors.New("boom")

	err := s.Update(context.Background(), func(t *vdom.Tree) error {
		if err := t.GetElementByID("p").SetAttribute("title", "x"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	rf := nextRecords(t, c)
	require.Len(t, rf.Records, 1)
	assert.Equal(t, protocol.OpSetAttr, rf.Records[0].Op)
}

func TestSequenceNumbersPerClient(t *testing.T) {
	s, _ := newTestServer(t, vdom.P(vdom.ID("p")))
	a := fakeClient(s)

	set := func(v string) func(*vdom.Tree) error {
		return func(t *vdom.Tree) error { return t.GetElementByID("p").SetAttribute("title", v) }
	}
	require.NoError(t, s.Update(context.Background(), set("1")))
	b := fakeClient(s)
	require.NoError(t, s.Update(context.Background(), set("2")))
	s.Refresh(context.Background())

	assert.Equal(t, uint64(1), nextRecords(t, a).Seq)
	assert.Equal(t, uint64(2), nextRecords(t, a).Seq)
	assert.Equal(t, uint64(1), nextRecords(t, b).Seq)

	reset := nextRecords(t, a)
	assert.Equal(t, uint64(3), reset.Seq)
	assert.Equal(t, protocol.OpReset, reset.Records[0].Op)
	assert.Equal(t, `<p id="p" title="2" data-vid="1"></p>`, reset.Records[0].HTML)
}
