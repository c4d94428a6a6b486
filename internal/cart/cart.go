// Package cart holds the cart merge logic and the checkout sequence
// that turns a cart into an order plus invoice.
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mkarlsson/bookshop/internal/store"
)

// ErrEmptyCart is returned by Checkout when the member has nothing in
// the cart; no writes happen in that case.
var ErrEmptyCart = errors.New("cart is empty")

// Events receives domain events after checkout. A nil publisher is
// valid and turns publishing into a no-op.
type Events interface {
	PublishJSON(routingKey string, v any) error
}

type Service struct {
	store        *store.Store
	events       Events
	deliveryDays int
}

func New(s *store.Store, events Events, deliveryDays int) *Service {
	if deliveryDays <= 0 {
		deliveryDays = 7
	}
	return &Service{store: s, events: events, deliveryDays: deliveryDays}
}

// Item is one cart or invoice line as shown to the user.
type Item struct {
	ISBN  string
	Title string
	Price store.Money
	Qty   int32
	Total store.Money
}

// View is the cart/index view model.
type View struct {
	Items      []Item
	GrandTotal store.Money
}

// Invoice is the cart/invoice view model returned by Checkout.
type Invoice struct {
	OrderID      int64
	OrderDate    time.Time
	DeliveryDate time.Time
	Address      store.Address
	Items        []Item
	GrandTotal   store.Money
}

// Add puts qty copies of a book into the member's cart. A first add
// inserts the line; a repeat add sums quantities. Quantities below 1
// clamp to 1. The returned message is the flash text for the next
// page render.
func (s *Service) Add(ctx context.Context, userID int64, isbn, title string, qty int32) (string, error) {
	if qty < 1 {
		qty = 1
	}
	existing, ok, err := s.store.CartQty(ctx, userID, isbn)
	if err != nil {
		return "", err
	}
	if !ok {
		err = s.store.InsertCartLine(ctx, userID, isbn, qty)
	} else {
		err = s.store.UpdateCartQty(ctx, userID, isbn, existing+qty)
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%q added to cart!", title), nil
}

// CurrentView joins the cart with book prices and computes per-line
// and grand totals.
func (s *Service) CurrentView(ctx context.Context, userID int64) (*View, error) {
	details, err := s.store.CartDetails(ctx, userID)
	if err != nil {
		return nil, err
	}
	v := &View{}
	for _, d := range details {
		total := d.Price.Mul(d.Qty)
		v.Items = append(v.Items, Item{
			ISBN: d.ISBN, Title: d.Title, Price: d.Price, Qty: d.Qty, Total: total,
		})
		v.GrandTotal = v.GrandTotal.Add(total)
	}
	return v, nil
}

// orderCreated is the payload published after a successful checkout.
type orderCreated struct {
	OrderID    int64 `json:"order_id"`
	UserID     int64 `json:"user_id"`
	TotalCents int64 `json:"total_cents"`
}

// Checkout converts the member's cart lines into one order with one
// order line each, then clears the cart. The steps run in sequence
// without a wrapping transaction; the first failing step aborts the
// rest and the error propagates.
func (s *Service) Checkout(ctx context.Context, userID int64) (*Invoice, error) {
	lines, err := s.store.CartForCheckout(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	orderDate := time.Now()
	// All rows belong to one member, so the address snapshot comes
	// from the first.
	addr := store.Address{Street: lines[0].Street, City: lines[0].City, Zip: lines[0].Zip}

	orderID, err := s.store.CreateOrder(ctx, userID, orderDate.Unix(), addr)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		OrderID:      orderID,
		OrderDate:    orderDate,
		DeliveryDate: orderDate.AddDate(0, 0, s.deliveryDays),
		Address:      addr,
	}
	for _, l := range lines {
		amount := l.Price.Mul(l.Qty)
		err := s.store.AddOrderLine(ctx, store.OrderLine{
			OrderID: orderID, ISBN: l.ISBN, Qty: l.Qty, Amount: amount,
		})
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, Item{
			ISBN: l.ISBN, Title: l.Title, Price: l.Price, Qty: l.Qty, Total: amount,
		})
		inv.GrandTotal = inv.GrandTotal.Add(amount)
	}

	if err := s.store.ClearCart(ctx, userID); err != nil {
		return nil, err
	}

	s.publish("order.created", orderCreated{
		OrderID: orderID, UserID: userID, TotalCents: inv.GrandTotal.Cents,
	})
	return inv, nil
}

func (s *Service) publish(key string, v any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(key, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("event publish failed")
	}
}
