package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/crlapples/commerce/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pricer resolves the live catalog price captured as a line's snapshot
// at add time. The catalog provider satisfies this.
type Pricer interface {
	UnitPrice(productID string) (string, error)
}

// Subscriber receives a read-only copy of the cart after every state
// change.
type Subscriber func(Cart)

type persistOp struct {
	snapshot Cart
	clear    bool
}

// Session is the single access point to one cart. Mutations apply the
// reducer to the in-memory state synchronously, so callers observe the
// change immediately; persistence happens afterwards on a worker
// goroutine and its failures are logged, never surfaced. The in-memory
// state stays authoritative for the rest of the session either way.
type Session struct {
	store  Store
	prices Pricer
	log    *zap.Logger

	mu      sync.Mutex
	cart    Cart
	open    bool
	closed  bool
	subs    map[int]Subscriber
	nextSub int

	persistCh chan persistOp
	done      chan struct{}
	closeOnce sync.Once

	applied      metrics.Counter
	persistFails metrics.Counter
}

// NewSession loads the scope's persisted cart (or starts empty when
// nothing usable is stored) and starts the persistence worker.
func NewSession(ctx context.Context, store Store, prices Pricer, log *zap.Logger) *Session {
	s := &Session{
		store:     store,
		prices:    prices,
		log:       log,
		subs:      make(map[int]Subscriber),
		persistCh: make(chan persistOp, 1),
		done:      make(chan struct{}),
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		log.Warn("cart load failed, starting empty", zap.Error(err))
	}
	if loaded != nil {
		s.cart = *loaded
		if _, bad := ComputeTotals(s.cart.Lines); len(bad) > 0 {
			log.Warn("restored cart has lines with unresolvable prices",
				zap.Strings("product_ids", bad))
		}
	} else {
		s.cart = Empty()
		s.cart.ID = uuid.NewString()
	}

	go s.persistLoop()
	return s
}

// Cart returns a copy of the current cart.
func (s *Session) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddItem merges quantity into the matching line, resolving the unit
// price snapshot from the catalog at call time. Quantity must be a
// positive integer; that is validated here, not in the reducer.
func (s *Session) AddItem(ctx context.Context, productID string, quantity int, variant VariantSelector) (Cart, error) {
	if quantity < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	price, err := s.prices.UnitPrice(productID)
	if err != nil {
		return Cart{}, fmt.Errorf("resolve unit price for %s: %w", productID, err)
	}

	return s.apply(AddItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: price,
		Variant:   variant,
	})
}

// UpdateItem applies a single-line adjustment. A kind outside the three
// known ones is a caller bug; an unmatched line is a silent no-op.
func (s *Session) UpdateItem(ctx context.Context, productID string, kind UpdateKind, variant VariantSelector) (Cart, error) {
	switch kind {
	case Increment, Decrement, Remove:
	default:
		return Cart{}, ErrInvalidUpdateKind
	}

	return s.apply(UpdateItem{ProductID: productID, Kind: kind, Variant: variant})
}

// Clear resets the cart and deletes the persisted record.
func (s *Session) Clear(ctx context.Context) (Cart, error) {
	return s.apply(ClearCart{})
}

// apply is the two-phase optimistic update: reduce and publish the new
// in-memory state synchronously, then queue best-effort persistence.
func (s *Session) apply(action Action) (Cart, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Cart{}, ErrSessionClosed
	}

	next := Reduce(s.cart, action)
	_, isClear := action.(ClearCart)
	if !isClear && next.ID == "" {
		next.ID = uuid.NewString()
	}
	s.cart = next

	snapshot := next.Clone()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}

	s.enqueuePersist(persistOp{snapshot: snapshot, clear: isClear})
	s.mu.Unlock()

	s.applied.Inc()
	if _, bad := ComputeTotals(snapshot.Lines); len(bad) > 0 {
		s.log.Warn("cart contains lines with unresolvable prices",
			zap.Strings("product_ids", bad))
	}

	for _, fn := range subs {
		fn(snapshot)
	}
	return snapshot, nil
}

// enqueuePersist hands a snapshot to the worker without ever blocking
// the mutating caller. Each op carries the complete cart, so when the
// buffer is occupied the stale snapshot is dropped in favor of the new
// one: the last write is the one that sticks.
func (s *Session) enqueuePersist(op persistOp) {
	for {
		select {
		case s.persistCh <- op:
			return
		default:
		}
		select {
		case <-s.persistCh:
		default:
		}
	}
}

func (s *Session) persistLoop() {
	defer close(s.done)

	for op := range s.persistCh {
		var err error
		if op.clear {
			err = s.store.Delete(context.Background())
		} else {
			err = s.store.Save(context.Background(), op.snapshot)
		}
		if err != nil {
			s.persistFails.Inc()
			s.log.Warn("cart persistence failed", zap.Error(err))
		}
	}
}

// Subscribe registers a change callback and returns its unsubscribe
// func. Callbacks run on the mutating goroutine, after the state has
// already been swapped.
func (s *Session) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// IsOpen reports the cart panel presentation flag. Not persisted.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Session) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// Stats returns how many mutations were applied and how many
// persistence attempts failed.
func (s *Session) Stats() (applied, persistFailures uint64) {
	return s.applied.Load(), s.persistFails.Load()
}

// CloseSession stops accepting mutations and drains pending writes.
func (s *Session) CloseSession() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		close(s.persistCh)
		<-s.done
	})
}
