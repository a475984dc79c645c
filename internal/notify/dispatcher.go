// Package notify dispatches order confirmation emails off the request path.
// An order id is enqueued when the order row is committed; the worker loads
// the order, sends the email, and flips the email_sent flag. Send failures
// are logged and left with the flag false; there is no retry scheduling.
package notify

import (
	"context"
	"sync"
	"time"

	"pahnawa/internal/log"
	"pahnawa/internal/mail"
	"pahnawa/internal/metrics"
	"pahnawa/internal/repos"
)

type Dispatcher struct {
	orders *repos.OrderRepo
	sender mail.Sender

	queue chan string
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(orders *repos.OrderRepo, sender mail.Sender) *Dispatcher {
	return &Dispatcher{
		orders: orders,
		sender: sender,
		queue:  make(chan string, 64),
	}
}

// Start launches the worker goroutine.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for id := range d.queue {
			d.process(id)
		}
	}()
}

// Enqueue hands an order id to the worker. A full queue drops the
// notification rather than blocking checkout; delivery is best-effort.
func (d *Dispatcher) Enqueue(orderID string) {
	select {
	case d.queue <- orderID:
	default:
		log.Security(nil, "notify.queue.full", map[string]any{"order_id": orderID})
		metrics.EmailsSent.WithLabelValues("dropped").Inc()
	}
}

// Stop drains the queue and waits for the worker.
func (d *Dispatcher) Stop() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}

func (d *Dispatcher) process(orderID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	o, err := d.orders.Get(ctx, orderID)
	if err != nil {
		log.Error(nil, "notify.order.load", err, map[string]any{"order_id": orderID})
		metrics.EmailsSent.WithLabelValues("error").Inc()
		return
	}
	if o.EmailSent {
		return
	}

	if err := d.sender.SendOrderConfirmation(o); err != nil {
		log.Error(nil, "notify.email.send", err, map[string]any{"order_id": orderID})
		metrics.EmailsSent.WithLabelValues("error").Inc()
		return
	}
	if err := d.orders.MarkEmailSent(ctx, orderID); err != nil {
		log.Error(nil, "notify.email.flag", err, map[string]any{"order_id": orderID})
	}
	log.Info(nil, "notify.email.sent", map[string]any{"order_id": orderID, "to": o.Shipping.Email})
	metrics.EmailsSent.WithLabelValues("sent").Inc()
}
