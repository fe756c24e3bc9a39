// internal/infrastructure/kv/keys.go
package kv

import "fmt"

// Keys builds the fixed key layout for storefront session state
type Keys struct {
	prefix string
}

// NewKeys creates a key builder rooted at prefix
func NewKeys(prefix string) Keys {
	return Keys{prefix: prefix}
}

func (k Keys) session(session, name string) string {
	return fmt.Sprintf("%s:%s:%s", k.prefix, session, name)
}

func (k Keys) Cart(session string) string          { return k.session(session, "cart") }
func (k Keys) SessionOrders(session string) string { return k.session(session, "orders") }
func (k Keys) IsAdmin(session string) string       { return k.session(session, "isAdmin") }
func (k Keys) Customer(session string) string      { return k.session(session, "customer") }

// Order is the key of a single order record
func (k Keys) Order(id string) string { return fmt.Sprintf("%s:order:%s", k.prefix, id) }

// AllOrders is the admin index of every order, newest first
func (k Keys) AllOrders() string { return k.prefix + ":orders" }

// PaymentIntent guards against placing two orders for one payment
func (k Keys) PaymentIntent(id string) string { return fmt.Sprintf("%s:payment:%s", k.prefix, id) }
