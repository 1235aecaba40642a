package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Orders holds the counters exposed by the orders service. Publish failures
// are counted here so a reconciliation job can alert on orders whose event
// never reached the broker.
type Orders struct {
	OrdersCreated   prometheus.Counter
	PublishFailures prometheus.Counter
}

func NewOrders() *Orders {
	m := &Orders{
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orders",
			Name:      "created_total",
			Help:      "Orders durably inserted.",
		}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orders",
			Name:      "publish_failures_total",
			Help:      "Order-created events that exhausted publish retries.",
		}),
	}
	prometheus.MustRegister(m.OrdersCreated, m.PublishFailures)
	return m
}

// Invoices holds the counters exposed by the invoices service.
type Invoices struct {
	InvoicesCreated     prometheus.Counter
	DuplicateDeliveries prometheus.Counter
}

func NewInvoices() *Invoices {
	m := &Invoices{
		InvoicesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invoices",
			Name:      "created_total",
			Help:      "Invoices created from order-created events.",
		}),
		DuplicateDeliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invoices",
			Name:      "duplicate_deliveries_total",
			Help:      "Redelivered events absorbed by the dedup ledger.",
		}),
	}
	prometheus.MustRegister(m.InvoicesCreated, m.DuplicateDeliveries)
	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}
