package adapter

import (
	"sync"

	"github.com/tetrisai/tetrisai/internal/tetris"
)

// Role is a client's arbitration state.
type Role int

const (
	RoleObserver Role = iota
	RoleController
)

func (r Role) String() string {
	if r == RoleController {
		return "controller"
	}
	return "observer"
}

// queuedCommand is a parsed, not-yet-applied command awaiting the next
// engine tick's drain.
type queuedCommand struct {
	seq     int64
	actions []actionRequest
}

type actionRequest struct {
	action  tetris.Action
	restart *uint32
}

// Client is the engine's view of one connected socket: its outbound
// mailbox, its bounded incoming command queue, and its arbitration and
// sequencing state. The struct is only ever mutated by the engine
// goroutine once registered; reader/writer goroutines interact with it
// only through the two channels.
type Client struct {
	ID   int
	Name string

	Role                Role
	StreamObservations  bool
	Handshaken          bool
	LastSeq             int64
	LastSentMS          int64

	CommandQueue chan queuedCommand
	out          chan any
	done         chan struct{}
	doneOnce     sync.Once
}

// NewClient allocates a client with the given command-queue capacity and
// outbound mailbox size.
func NewClient(id int, maxPending int) *Client {
	return &Client{
		ID:           id,
		CommandQueue: make(chan queuedCommand, maxPending),
		out:          make(chan any, 64),
		done:         make(chan struct{}),
	}
}

// Send enqueues an outbound message, dropping the oldest queued message
// if the mailbox is full. This mirrors the teacher's ChannelSession
// policy: fanout must never block the engine tick, and a superseded
// observation is not worth blocking for.
func (c *Client) Send(msg any) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.out <- msg:
	default:
		select {
		case <-c.out:
		default:
		}
		select {
		case c.out <- msg:
		default:
		}
	}
}

// Outbox returns the channel a writer goroutine should drain.
func (c *Client) Outbox() <-chan any { return c.out }

// Done returns a channel closed when the client is torn down.
func (c *Client) Done() <-chan struct{} { return c.done }

// Close marks the client as finished. Safe to call more than once.
func (c *Client) Close() {
	c.doneOnce.Do(func() { close(c.done) })
}

// TryEnqueueCommand pushes a command onto the bounded incoming queue
// without blocking. It reports false if the queue is already full,
// which the caller must translate into a backpressure error.
func (c *Client) TryEnqueueCommand(cmd queuedCommand) bool {
	select {
	case c.CommandQueue <- cmd:
		return true
	default:
		return false
	}
}

// registry tracks connected clients by id, mutated only by the engine
// goroutine. It is not itself concurrency-safe by design: ownership is
// what makes it safe, not locking.
type registry struct {
	clients map[int]*Client
	order   []int
}

func newRegistry() *registry {
	return &registry{clients: make(map[int]*Client)}
}

func (r *registry) add(c *Client) {
	r.clients[c.ID] = c
	r.order = append(r.order, c.ID)
}

func (r *registry) remove(id int) {
	delete(r.clients, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *registry) get(id int) (*Client, bool) {
	c, ok := r.clients[id]
	return c, ok
}

// lowestIDExcept returns the smallest connected client id other than
// exclude, or -1 if none remain. Used for auto-promoting the lowest-id
// observer when the controller disconnects.
func (r *registry) lowestIDExcept(exclude int) int {
	best := -1
	for _, id := range r.order {
		if id == exclude {
			continue
		}
		if best == -1 || id < best {
			best = id
		}
	}
	return best
}
